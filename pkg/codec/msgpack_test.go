package codec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestMsgpackCodec_Serialize(t *testing.T) {
	codec := NewMsgpackCodec()

	payload, err := codec.Serialize([]Record{
		NewRecord("Ada", "Lovelace", 1),
		NewRecord("Alan", "Turing", 2),
	})
	require.NoError(t, err)

	// fixarray of two fixmaps with three entries each
	assert.Equal(t, byte(0x92), payload[0])
	assert.Equal(t, byte(0x83), payload[1])

	var generic []map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(payload, &generic))
	require.Len(t, generic, 2)
	assert.Equal(t, "Ada", generic[0]["firstName"])
	assert.Equal(t, "Turing", generic[1]["lastName"])
	assert.EqualValues(t, 2, generic[1]["teamId"])

	empty, err := codec.Serialize(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x90}, empty)
}

func TestMsgpackCodec_DecodesForeignEncoding(t *testing.T) {
	codec := NewMsgpackCodec()

	// maps written in any key order with any integer width still decode
	payload, err := msgpack.Marshal([]map[string]interface{}{
		{"firstName": "asd", "lastName": "asd", "teamId": int64(12345)},
		{"teamId": uint8(7), "lastName": "b", "firstName": "a"},
		{"firstName": "c", "lastName": "d", "teamId": int8(-3)},
		{"firstName": "e", "lastName": "f", "teamId": uint64(math.MaxInt)},
	})
	require.NoError(t, err)

	got, err := decodeChunked(t, codec, payload, 2)
	require.NoError(t, err)
	assert.Equal(t, []Record{
		NewRecord("asd", "asd", 12345),
		NewRecord("a", "b", 7),
		NewRecord("c", "d", -3),
		NewRecord("e", "f", math.MaxInt),
	}, got)
}

func TestMsgpackCodec_Malformed(t *testing.T) {
	codec := NewMsgpackCodec()

	mustMarshal := func(v interface{}) []byte {
		b, err := msgpack.Marshal(v)
		require.NoError(t, err)
		return b
	}

	valid, err := codec.Serialize([]Record{NewRecord("Ada", "Lovelace", 1)})
	require.NoError(t, err)

	testCases := []struct {
		name    string
		payload []byte
		reason  string
		cause   string
	}{
		{
			name:    "empty",
			payload: []byte{},
			reason:  "truncated",
		},
		{
			name:    "nil",
			payload: []byte{0xc0},
			reason:  "not an array",
		},
		{
			name:    "map at top level",
			payload: mustMarshal(map[string]int{"teamId": 1}),
			reason:  "invalid array header",
		},
		{
			name:    "fewer elements than declared",
			payload: append([]byte{0x93}, valid[1:]...),
			reason:  "element 1 of 3: truncated",
		},
		{
			name:    "element of wrong type",
			payload: mustMarshal([]interface{}{"not a record"}),
			reason:  "element 0 of 1",
		},
		{
			name:    "string team id",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b", "teamId": "1"}}),
			reason:  "element 0 of 1",
		},
		{
			name:    "team id above int range",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b", "teamId": uint64(1) << 63}}),
			reason:  "element 0 of 1",
			cause:   "out of range",
		},
		{
			name:    "nil team id",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b", "teamId": nil}}),
			reason:  "element 0 of 1",
			cause:   "value is nil",
		},
		{
			name:    "float team id",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b", "teamId": 1.5}}),
			reason:  "element 0 of 1",
			cause:   "expected an integer",
		},
		{
			name:    "nil first name",
			payload: mustMarshal([]map[string]interface{}{{"firstName": nil, "lastName": "b", "teamId": 1}}),
			reason:  "element 0 of 1",
			cause:   "value is nil",
		},
		{
			name:    "nil element",
			payload: mustMarshal([]interface{}{nil}),
			reason:  "element 0 of 1",
			cause:   "record is null",
		},
		{
			name:    "nil element after a record",
			payload: mustMarshal([]interface{}{map[string]interface{}{"firstName": "a", "lastName": "b", "teamId": 1}, nil}),
			reason:  "element 1 of 2",
			cause:   "record is null",
		},
		{
			name:    "empty map",
			payload: mustMarshal([]map[string]interface{}{{}}),
			reason:  "element 0 of 1",
			cause:   "record is missing firstName, lastName, teamId",
		},
		{
			name:    "missing team id",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b"}}),
			reason:  "element 0 of 1",
			cause:   "record is missing teamId",
		},
		{
			name:    "unknown field",
			payload: mustMarshal([]map[string]interface{}{{"zzz": 1}}),
			reason:  "element 0 of 1",
			cause:   `unknown field "zzz"`,
		},
		{
			name:    "extra field beside a full record",
			payload: mustMarshal([]map[string]interface{}{{"firstName": "a", "lastName": "b", "teamId": 1, "extra": true}}),
			reason:  "element 0 of 1",
			cause:   `unknown field "extra"`,
		},
		{
			name:    "duplicate field",
			payload: []byte{0x91, 0x84, 0xa6, 't', 'e', 'a', 'm', 'I', 'd', 0x01, 0xa6, 't', 'e', 'a', 'm', 'I', 'd', 0x02},
			reason:  "element 0 of 1",
			cause:   `duplicate field "teamId"`,
		},
		{
			name:    "trailing data",
			payload: append(bytes.Clone(valid), 0x01),
			reason:  "trailing data",
		},
		{
			name:    "string length beyond payload",
			payload: []byte{0x91, 0x81, 0xa9, 'f', 'i', 'r', 's', 't'},
			reason:  "truncated",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeChunked(t, codec, tc.payload, 3)
			assert.Nil(t, got)

			var mpe *MalformedPayloadError
			require.True(t, errors.As(err, &mpe), "got %T: %v", err, err)
			assert.Equal(t, KindMsgpack, mpe.Codec)
			assert.Contains(t, mpe.Reason, tc.reason)
			if tc.cause != "" {
				require.Error(t, mpe.Err)
				assert.Contains(t, mpe.Err.Error(), tc.cause)
			}
		})
	}
}

func TestMsgpackCodec_HugeDeclaredCount(t *testing.T) {
	codec := NewMsgpackCodec()

	// array32 header claiming four billion elements with nothing behind it
	payload := []byte{0xdd, 0xff, 0xff, 0xff, 0xf0}

	_, err := decodeChunked(t, codec, payload, 64)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
