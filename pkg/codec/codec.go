package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ssargent/serdebench/pkg/stream"
)

// Kind names a wire format
type Kind string

const (
	// KindJSON is the line-delimited text format: one JSON array document
	KindJSON Kind = "json"
	// KindCSV is the tabular format: a header row followed by one row per record
	KindCSV Kind = "csv"
	// KindMsgpack is the binary packed format: a MessagePack array of maps
	KindMsgpack Kind = "msgpack"
)

// ErrUnknownCodec is returned by New for a kind that has no implementation
var ErrUnknownCodec = errors.New("unknown codec")

// Codec pairs a serializer with a streaming deserializer for one wire format
type Codec interface {
	// Kind returns the wire format implemented by the codec
	Kind() Kind

	// Serialize renders records into a single payload
	Serialize(records []Record) ([]byte, error)

	// Deserialize consumes src to completion and rebuilds the records in
	// their original order. Parse failures are *MalformedPayloadError; errors
	// reported by src are returned unchanged.
	Deserialize(src stream.Source) ([]Record, error)
}

var constructors = map[Kind]func() Codec{
	KindJSON:    func() Codec { return NewJSONCodec() },
	KindCSV:     func() Codec { return NewCSVCodec() },
	KindMsgpack: func() Codec { return NewMsgpackCodec() },
}

// New returns the codec for kind
func New(kind Kind) (Codec, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, kind)
	}
	return ctor(), nil
}

// Kinds returns every supported kind in name order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind validates a codec name
func ParseKind(name string) (Kind, error) {
	kind := Kind(name)
	if _, ok := constructors[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return kind, nil
}
