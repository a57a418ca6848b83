package codec

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload matches every *MalformedPayloadError through errors.Is
var ErrMalformedPayload = errors.New("malformed payload")

// MalformedPayloadError reports a payload that cannot be parsed into records
type MalformedPayloadError struct {
	Codec  Kind   // Format that rejected the payload
	Offset int64  // Payload bytes consumed when the failure was detected
	Reason string // What was wrong
	Err    error  // Underlying parser error, if any
}

func (e *MalformedPayloadError) Error() string {
	msg := fmt.Sprintf("%s: malformed payload at byte %d: %s", e.Codec, e.Offset, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedPayload
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func malformed(kind Kind, offset int64, reason string, err error) *MalformedPayloadError {
	return &MalformedPayloadError{
		Codec:  kind,
		Offset: offset,
		Reason: reason,
		Err:    err,
	}
}
