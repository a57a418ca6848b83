package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/ssargent/serdebench/pkg/stream"
)

// maxPrealloc caps the capacity reserved from an untrusted array header
const maxPrealloc = 4096

// MsgpackCodec encodes a batch as a MessagePack array of maps. The array
// header carries the element count, so Deserialize emits records one at a
// time as their bytes arrive instead of buffering the whole payload.
// Elements must be maps holding exactly the three record keys.
type MsgpackCodec struct{}

// NewMsgpackCodec creates a new MessagePack codec instance
func NewMsgpackCodec() *MsgpackCodec {
	return &MsgpackCodec{}
}

// Kind implements Codec
func (c *MsgpackCodec) Kind() Kind {
	return KindMsgpack
}

// Serialize implements Codec
func (c *MsgpackCodec) Serialize(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeArrayLen(len(records)); err != nil {
		return nil, fmt.Errorf("failed to encode array header: %w", err)
	}
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// Deserialize implements Codec
func (c *MsgpackCodec) Deserialize(src stream.Source) ([]Record, error) {
	r := stream.NewReader(src)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, c.decodeError(r, "invalid array header", err)
	}
	if n < 0 {
		return nil, malformed(KindMsgpack, r.BytesRead(), "payload is not an array", nil)
	}

	records := make([]Record, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		what := fmt.Sprintf("element %d of %d", i, n)

		// Decode leaves a zero value for nil without calling DecodeMsgpack
		code, err := dec.PeekCode()
		if err != nil {
			return nil, c.decodeError(r, what, err)
		}
		if code == msgpcode.Nil {
			return nil, malformed(KindMsgpack, r.BytesRead(), what, errNilRecord)
		}

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, c.decodeError(r, what, err)
		}
		records = append(records, rec)
	}

	if _, err := dec.PeekCode(); err != io.EOF {
		if terr := r.Err(); terr != nil {
			return nil, terr
		}
		return nil, malformed(KindMsgpack, r.BytesRead(), "trailing data after array", err)
	}

	return records, nil
}

// decodeError separates source failures from payloads that end early or do
// not decode
func (c *MsgpackCodec) decodeError(r *stream.Reader, what string, err error) error {
	if terr := r.Err(); terr != nil {
		return terr
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return malformed(KindMsgpack, r.BytesRead(), what+": truncated", err)
	}
	return malformed(KindMsgpack, r.BytesRead(), what, err)
}

// DecodeMsgpack decodes one record map. Every key must appear exactly once
// with a non-nil value, and teamId must fit in an int.
func (r *Record) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n < 0 {
		return errNilRecord
	}

	var seen recordField
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}

		field, err := fieldFor(key)
		if err != nil {
			return err
		}
		if seen&field != 0 {
			return fmt.Errorf("duplicate field %q", key)
		}
		seen |= field

		switch field {
		case fieldFirstName:
			r.FirstName, err = decodeMsgpackString(dec)
		case fieldLastName:
			r.LastName, err = decodeMsgpackString(dec)
		case fieldTeamID:
			r.TeamID, err = decodeMsgpackInt(dec)
		}
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}

	return checkFields(seen)
}

func decodeMsgpackString(dec *msgpack.Decoder) (string, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return "", err
	}
	if code == msgpcode.Nil {
		return "", errors.New("value is nil")
	}
	return dec.DecodeString()
}

// decodeMsgpackInt accepts any integer encoding whose value fits in an int
func decodeMsgpackInt(dec *msgpack.Decoder) (int, error) {
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("value %d out of range", n)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("value %d out of range", n)
		}
		return int(n), nil
	case nil:
		return 0, errors.New("value is nil")
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
