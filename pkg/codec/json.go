package codec

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ssargent/serdebench/pkg/stream"
)

// JSONCodec encodes a batch as a single JSON array document. The document has
// no decode boundary cheaper than the whole payload, so Deserialize buffers
// the entire stream before parsing. Elements must be complete record objects;
// null, partial and extended objects are malformed.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec instance
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Kind implements Codec
func (c *JSONCodec) Kind() Kind {
	return KindJSON
}

// Serialize implements Codec
func (c *JSONCodec) Serialize(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

// Deserialize implements Codec
func (c *JSONCodec) Deserialize(src stream.Source) ([]Record, error) {
	r := stream.NewReader(src)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, malformed(KindJSON, r.BytesRead(), "empty document", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, malformed(KindJSON, dec.InputOffset(), "invalid document", err)
	}
	if records == nil {
		return nil, malformed(KindJSON, dec.InputOffset(), "document is not an array", nil)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(KindJSON, dec.InputOffset(), "trailing data after document", err)
	}

	return records, nil
}

// UnmarshalJSON decodes one record object. Every field must be present and
// non-null, and unknown fields are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errNilRecord
	}

	var wire struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		TeamID    *int    `json:"teamId"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return err
	}

	var seen recordField
	if wire.FirstName != nil {
		seen |= fieldFirstName
	}
	if wire.LastName != nil {
		seen |= fieldLastName
	}
	if wire.TeamID != nil {
		seen |= fieldTeamID
	}
	if err := checkFields(seen); err != nil {
		return err
	}

	*r = NewRecord(*wire.FirstName, *wire.LastName, *wire.TeamID)
	return nil
}
