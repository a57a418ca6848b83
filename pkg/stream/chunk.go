// Package stream slices serialized payloads into chunks and feeds them to
// decoders one pull at a time.
package stream

import (
	"errors"
	"io"
)

// DefaultChunkSize is the chunk size used when simulating I/O boundaries
const DefaultChunkSize = 64000

// ErrInvalidChunkSize is returned when a chunk source is created with a non-positive size
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Source yields the chunks of a payload in order. Next returns io.EOF once
// the payload is exhausted. Like io.Reader, Next may return a final chunk
// together with a non-nil error; the chunk is consumed before the error is
// reported. A Source has exactly one consumer and cannot be restarted.
type Source interface {
	Next() ([]byte, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func() ([]byte, error)

// Next calls f
func (f SourceFunc) Next() ([]byte, error) {
	return f()
}

// ChunkSource slices an in-memory payload into chunks of at most Size bytes.
// The final chunk is not padded.
type ChunkSource struct {
	payload []byte
	size    int
	offset  int
	chunks  int
}

// NewChunkSource creates a chunk source over payload
func NewChunkSource(payload []byte, size int) (*ChunkSource, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	return &ChunkSource{payload: payload, size: size}, nil
}

// Next returns the next chunk. The returned slice aliases the payload and
// must not be modified.
func (s *ChunkSource) Next() ([]byte, error) {
	if s.offset >= len(s.payload) {
		return nil, io.EOF
	}

	end := s.offset + s.size
	if end > len(s.payload) {
		end = len(s.payload)
	}

	chunk := s.payload[s.offset:end:end]
	s.offset = end
	s.chunks++
	return chunk, nil
}

// Chunks returns how many chunks have been handed out so far
func (s *ChunkSource) Chunks() int {
	return s.chunks
}

// Remaining returns the number of payload bytes not yet handed out
func (s *ChunkSource) Remaining() int {
	return len(s.payload) - s.offset
}
