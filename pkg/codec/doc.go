// Package codec provides the record serialization formats benchmarked by serdebench.
//
// Every format implements the Codec interface: Serialize turns a batch of
// records into one payload, and Deserialize rebuilds the batch from a
// stream.Source that hands the payload over in chunks. A codec is chosen once,
// by Kind, before a run starts.
//
// # Record Shape
//
// Records have three fields, always in this order:
//
//	firstName string
//	lastName  string
//	teamId    integer
//
// # Formats
//
// The json codec writes one JSON array document. It cannot decode anything
// until the document is complete, so its deserializer buffers the whole
// stream first.
//
// The csv codec writes a header row and one row per record, quoting any field
// that contains a comma, a double quote, a line break or a leading space, and
// doubling embedded quotes. Its deserializer decodes row by row while chunks
// arrive. Columns are mapped by position. A teamId that is not a base-10
// integer is rejected rather than coerced.
//
// The msgpack codec writes a MessagePack array header followed by one map per
// record. The header declares the element count, which lets the deserializer
// emit records as soon as each element's bytes have arrived.
//
// # Usage
//
//	c, err := codec.New(codec.KindCSV)
//	if err != nil {
//	    return err
//	}
//
//	payload, err := c.Serialize(records)
//	if err != nil {
//	    return err
//	}
//
//	src, err := stream.NewChunkSource(payload, stream.DefaultChunkSize)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := c.Deserialize(src)
//	if errors.Is(err, codec.ErrMalformedPayload) {
//	    // the payload was truncated or corrupt
//	}
//
// # Error Handling
//
// Payloads that cannot be parsed produce a *MalformedPayloadError carrying the
// codec, the number of bytes consumed when the problem was found and the
// parser's own error. Errors returned by the source are passed through
// untouched so transport failures are never mistaken for corrupt data.
//
// # Thread Safety
//
// Codec values hold no state and are safe for concurrent use. A single
// stream.Source must only be consumed by one Deserialize call.
package codec
