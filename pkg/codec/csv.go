package codec

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ssargent/serdebench/pkg/stream"
)

// CSVCodec encodes a batch as a header row followed by one row per record.
// Deserialize is fully streaming: a row is decoded as soon as its terminator
// has been read, even when it ends mid-chunk.
//
// Rows map to records by position, not by header name. Every row must have
// exactly three columns and a base-10 integer teamId, and the payload must end
// with a row terminator; anything else is a MalformedPayloadError. Serialize
// never writes an empty line, so blank lines are rejected too.
type CSVCodec struct{}

// NewCSVCodec creates a new CSV codec instance
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Kind implements Codec
func (c *CSVCodec) Kind() Kind {
	return KindCSV
}

// Serialize implements Codec
func (c *CSVCodec) Serialize(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range records {
		if err := w.Write(r.Fields()); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush rows: %w", err)
	}

	return buf.Bytes(), nil
}

// Deserialize implements Codec
func (c *CSVCodec) Deserialize(src stream.Source) ([]Record, error) {
	r := stream.NewReader(src)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.ReuseRecord = true

	records := []Record{}
	header := true
	lastLine := 0 // line on which the previous row ended
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if terr := r.Err(); terr != nil {
				return nil, terr
			}
			return nil, malformed(KindCSV, r.BytesRead(), "invalid row", err)
		}

		line, _ := cr.FieldPos(0)
		if line != lastLine+1 {
			return nil, malformed(KindCSV, r.BytesRead(), fmt.Sprintf("line %d: blank line", lastLine+1), nil)
		}
		lastLine, _ = cr.FieldPos(len(row) - 1)
		lastLine += strings.Count(row[len(row)-1], "\n")

		if header {
			header = false
			continue
		}

		teamID, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, malformed(KindCSV, r.BytesRead(),
				fmt.Sprintf("line %d: teamId %q is not an integer", line, row[2]), err)
		}

		records = append(records, NewRecord(row[0], row[1], teamID))
	}

	if terr := r.Err(); terr != nil {
		return nil, terr
	}
	if last, ok := r.LastByte(); ok && last != '\n' {
		return nil, malformed(KindCSV, r.BytesRead(), "payload ends without a row terminator",
			errors.New("truncated row"))
	}
	if r.Lines() != int64(lastLine) {
		return nil, malformed(KindCSV, r.BytesRead(), fmt.Sprintf("line %d: blank line", lastLine+1), nil)
	}

	return records, nil
}
