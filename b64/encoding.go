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

import "fmt"

// Encoding pairs an Alphabet with a kernel. Unless pinned with WithKernel,
// it uses the kernel picked by the dispatcher on first use.
// An Encoding is safe for concurrent use; the State passed to the chunk
// methods is not.
type Encoding struct {
	alphabet *Alphabet
	kernel   *Kernel
}

var (
	// StdEncoding uses StdAlphabet.
	StdEncoding = &Encoding{alphabet: StdAlphabet}

	// URLEncoding uses URLAlphabet.
	URLEncoding = &Encoding{alphabet: URLAlphabet}
)

// Option configures an Encoding.
type Option func(*Encoding) error

// WithKernel pins the encoding to one kernel instead of the dispatcher's
// choice. NewEncoding fails with ErrKernelUnavailable when the kernel is not
// compiled in or the CPU cannot run it.
func WithKernel(level DispatchLevel) Option {
	return func(e *Encoding) error {
		k, err := KernelByLevel(level)
		if err != nil {
			return err
		}
		e.kernel = k
		return nil
	}
}

// NewEncoding returns an Encoding for a. A nil a means StdAlphabet. Any
// other a must come from NewAlphabet or be a predefined alphabet; a zero
// Alphabet fails with ErrInvalidAlphabet.
func NewEncoding(a *Alphabet, opts ...Option) (*Encoding, error) {
	if a == nil {
		a = StdAlphabet
	}
	if !a.usable() {
		return nil, fmt.Errorf("new encoding: %w: zero Alphabet, use NewAlphabet", ErrInvalidAlphabet)
	}
	e := &Encoding{alphabet: a}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("new encoding: %w", err)
		}
	}
	return e, nil
}

func (e *Encoding) kern() *Kernel {
	if e.kernel != nil {
		return e.kernel
	}
	return Select()
}

// Alphabet returns the symbol set of e.
func (e *Encoding) Alphabet() *Alphabet {
	return e.alphabet
}

// KernelName reports the kernel e runs on. It is meant for diagnostics.
func (e *Encoding) KernelName() string {
	return e.kern().Name()
}

// EncodeChunk encodes src as the continuation of the stream described by
// st and returns the number of symbols written to dst. When final is false
// an incomplete trailing group is carried in st; when true it is flushed
// with padding and st is reset.
//
// dst must hold EncodedChunkLen(st, len(src), final) bytes.
func (e *Encoding) EncodeChunk(dst, src []byte, st *State, final bool) int {
	return encodeChunk(e.kern(), e.alphabet, dst, src, st, final)
}

// DecodeChunk decodes src as the continuation of the stream described by
// st and returns the number of bytes written to dst.
//
// On an invalid symbol the status is StatusInvalid, the error is a
// *CorruptInputError, the returned count is the valid prefix already
// written, and st keeps the value it had on entry.
//
// dst must hold DecodedChunkLen(st, len(src)) bytes.
func (e *Encoding) DecodeChunk(dst, src []byte, st *State) (int, Status, error) {
	return decodeChunk(e.kern(), e.alphabet, dst, src, st)
}

// DecodeEnd reports ErrTruncated when the stream in st stopped in the
// middle of a group or before its final padding.
func (e *Encoding) DecodeEnd(st *State) error {
	return decodeEnd(st)
}

// EncodedLen returns the length of the padded encoding of n bytes.
func (e *Encoding) EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the maximum number of bytes n symbols decode to.
func (e *Encoding) DecodedLen(n int) int {
	return decodedLen(n)
}

// Encode writes the padded encoding of src to dst and returns the number of
// bytes written, always EncodedLen(len(src)).
func (e *Encoding) Encode(dst, src []byte) int {
	var st State
	return e.EncodeChunk(dst, src, &st, true)
}

// AppendEncode appends the padded encoding of src to dst.
func (e *Encoding) AppendEncode(dst, src []byte) []byte {
	n := e.EncodedLen(len(src))
	dst = grow(dst, n)
	e.Encode(dst[len(dst):len(dst)+n], src)
	return dst[:len(dst)+n]
}

// EncodeToString returns the padded encoding of src.
func (e *Encoding) EncodeToString(src []byte) string {
	buf := make([]byte, e.EncodedLen(len(src)))
	e.Encode(buf, src)
	return string(buf)
}

// Decode decodes the complete stream src into dst and returns the number of
// bytes written. dst must hold DecodedLen(len(src)) bytes.
func (e *Encoding) Decode(dst, src []byte) (int, error) {
	var st State
	n, _, err := e.DecodeChunk(dst, src, &st)
	if err != nil {
		return n, err
	}
	return n, decodeEnd(&st)
}

// AppendDecode appends the decoding of the complete stream src to dst. On
// error it returns dst extended by the valid prefix.
func (e *Encoding) AppendDecode(dst, src []byte) ([]byte, error) {
	n := e.DecodedLen(len(src))
	dst = grow(dst, n)
	m, err := e.Decode(dst[len(dst):len(dst)+n], src)
	return dst[:len(dst)+m], err
}

// DecodeString returns the bytes represented by the complete stream s.
func (e *Encoding) DecodeString(s string) ([]byte, error) {
	buf := make([]byte, e.DecodedLen(len(s)))
	n, err := e.Decode(buf, []byte(s))
	return buf[:n], err
}

// grow makes room for n more bytes after len(b).
func grow(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	nb := make([]byte, len(b), len(b)+n)
	copy(nb, b)
	return nb
}
