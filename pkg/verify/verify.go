// Package verify compares an original record batch against its round-tripped copy.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kr/pretty"

	"github.com/ssargent/serdebench/pkg/codec"
)

var (
	// ErrLengthMismatch matches every *LengthMismatchError through errors.Is
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrEqualityMismatch matches every *EqualityMismatchError through errors.Is
	ErrEqualityMismatch = errors.New("equality mismatch")
)

// LengthMismatchError reports batches of different sizes
type LengthMismatchError struct {
	Expected int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("expected and actual results differ in length: %d != %d", e.Expected, e.Actual)
}

// Is reports whether target is ErrLengthMismatch
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// EqualityMismatchError reports the first index at which the batches differ
type EqualityMismatchError struct {
	Index    int
	Expected codec.Record
	Actual   codec.Record
	Diff     []string // Field-level differences, e.g. `TeamID: 1 != 2`
}

func (e *EqualityMismatchError) Error() string {
	return fmt.Sprintf("records differ at index %d: expected %v, got %v (%s)",
		e.Index, e.Expected, e.Actual, strings.Join(e.Diff, "; "))
}

// Is reports whether target is ErrEqualityMismatch
func (e *EqualityMismatchError) Is(target error) bool {
	return target == ErrEqualityMismatch
}

// Records checks that actual matches expected index by index. It stops at
// the first difference.
func Records(expected, actual []codec.Record) error {
	if len(expected) != len(actual) {
		return &LengthMismatchError{Expected: len(expected), Actual: len(actual)}
	}

	for i := range expected {
		if expected[i] != actual[i] {
			return &EqualityMismatchError{
				Index:    i,
				Expected: expected[i],
				Actual:   actual[i],
				Diff:     pretty.Diff(expected[i], actual[i]),
			}
		}
	}

	return nil
}
