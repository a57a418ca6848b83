package stream

import (
	"bytes"
	"io"
)

// Reader presents a Source as an io.Reader. A new chunk is pulled only when
// the current one has been fully read, so decoders built on top of it see the
// payload incrementally.
type Reader struct {
	src     Source
	current []byte
	read    int64
	lines   int64
	chunks  int
	last    byte
	err     error
	done    bool
}

// NewReader creates a reader that pulls from src
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Read implements io.Reader
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(r.current) == 0 {
		if r.done {
			if r.err != nil {
				return 0, r.err
			}
			return 0, io.EOF
		}

		chunk, err := r.src.Next()
		if err != nil {
			r.done = true
			if err != io.EOF {
				r.err = err
			}
		}
		if len(chunk) == 0 {
			continue
		}
		r.current = chunk
		r.chunks++
	}

	n := copy(p, r.current)
	r.current = r.current[n:]
	r.read += int64(n)
	r.lines += int64(bytes.Count(p[:n], []byte{'\n'}))
	r.last = p[n-1]
	return n, nil
}

// Err returns the error reported by the source, if any. io.EOF is not an error.
func (r *Reader) Err() error {
	return r.err
}

// BytesRead returns the number of payload bytes delivered to callers
func (r *Reader) BytesRead() int64 {
	return r.read
}

// Lines returns the number of '\n' bytes delivered to callers
func (r *Reader) Lines() int64 {
	return r.lines
}

// Chunks returns the number of non-empty chunks pulled from the source
func (r *Reader) Chunks() int {
	return r.chunks
}

// LastByte returns the most recent byte delivered and whether any byte has
// been delivered at all
func (r *Reader) LastByte() (byte, bool) {
	return r.last, r.read > 0
}
