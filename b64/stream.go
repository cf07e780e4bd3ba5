// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package b64

import (
	"errors"
	"io"
)

// streamChunk is the number of input bytes handled per engine call.
const streamChunk = 3 * 1024

type encoder struct {
	enc    *Encoding
	w      io.Writer
	st     State
	out    []byte
	err    error
	closed bool
}

// NewEncoder returns a writer that encodes everything written to it and
// passes the symbols on to w. Close flushes the final group and its
// padding; it does not close w.
func NewEncoder(enc *Encoding, w io.Writer) io.WriteCloser {
	return &encoder{
		enc: enc,
		w:   w,
		// Room for a full chunk plus the two bytes a State may carry.
		out: make([]byte, (streamChunk+2)/3*4),
	}
}

func (e *encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.closed {
		return 0, errors.New("b64: write to closed encoder")
	}
	n := 0
	for len(p) > 0 {
		c := min(len(p), streamChunk)
		m := e.enc.EncodeChunk(e.out, p[:c], &e.st, false)
		if _, e.err = e.w.Write(e.out[:m]); e.err != nil {
			return n, e.err
		}
		n += c
		p = p[c:]
	}
	return n, nil
}

func (e *encoder) Close() error {
	if e.err != nil || e.closed {
		return e.err
	}
	e.closed = true
	m := e.enc.EncodeChunk(e.out, nil, &e.st, true)
	if m > 0 {
		_, e.err = e.w.Write(e.out[:m])
	}
	return e.err
}

type decoder struct {
	enc  *Encoding
	r    io.Reader
	st   State
	in   []byte
	buf  []byte
	out  []byte // decoded, not yet returned
	err  error
	read int // symbols consumed, for error offsets
	done int // bytes produced, for error prefixes
}

// NewDecoder returns a reader that decodes the base64 stream read from r.
// Read returns io.EOF once r is exhausted on a group boundary, ErrTruncated
// when r ends inside a group, and a *CorruptInputError with offsets counted
// from the start of the stream for invalid input.
func NewDecoder(enc *Encoding, r io.Reader) io.Reader {
	return &decoder{
		enc: enc,
		r:   r,
		in:  make([]byte, streamChunk/3*4),
		// Up to three symbols may be carried into the next chunk.
		buf: make([]byte, streamChunk+3),
	}
}

func (d *decoder) Read(p []byte) (int, error) {
	for len(d.out) == 0 {
		if d.err != nil {
			return 0, d.err
		}
		d.fill()
	}
	n := copy(p, d.out)
	d.out = d.out[n:]
	return n, nil
}

// fill decodes the next chunk of input into d.out, recording any error to
// be returned after the decoded prefix.
func (d *decoder) fill() {
	n, rerr := d.r.Read(d.in)
	if n > 0 {
		m, _, err := d.enc.DecodeChunk(d.buf, d.in[:n], &d.st)
		d.out = d.buf[:m]
		if err != nil {
			var cie *CorruptInputError
			if errors.As(err, &cie) {
				err = &CorruptInputError{Offset: d.read + cie.Offset, Written: d.done + cie.Written, Symbol: cie.Symbol}
			}
			d.err = err
			return
		}
		d.read += n
		d.done += m
	}
	switch {
	case rerr == io.EOF:
		if err := d.enc.DecodeEnd(&d.st); err != nil {
			d.err = err
		} else {
			d.err = io.EOF
		}
	case rerr != nil:
		d.err = rerr
	}
}
