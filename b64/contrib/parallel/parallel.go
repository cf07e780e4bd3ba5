// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package parallel transcodes large buffers by splitting them into
// independent segments on a worker pool.
//
// Encode segments are cut on 3-byte boundaries and decode segments on
// 4-symbol boundaries, so every segment starts from a zero b64.State and
// the concatenated result equals a single call over the whole buffer.
package parallel

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-base64/b64"
	"github.com/ajroetker/go-base64/b64/contrib/workerpool"
	"go.uber.org/zap"
)

// DefaultSegmentSize is the number of input bytes encoded per segment.
const DefaultSegmentSize = 192 << 10

// Transcoder runs an Encoding on a Pool.
type Transcoder struct {
	enc     *b64.Encoding
	pool    *workerpool.Pool
	segSize int // input bytes per encode segment, a multiple of 3
}

// New returns a Transcoder. segSize is the number of input bytes per encode
// segment, rounded down to a multiple of 3; decode segments hold the
// matching number of symbols. segSize <= 0 selects DefaultSegmentSize.
func New(enc *b64.Encoding, pool *workerpool.Pool, segSize int) *Transcoder {
	if segSize <= 0 {
		segSize = DefaultSegmentSize
	}
	return &Transcoder{
		enc:     enc,
		pool:    pool,
		segSize: max(3, segSize/3*3),
	}
}

// Encode writes the padded encoding of src to dst and returns the number of
// bytes written. dst must hold EncodedLen(len(src)) bytes.
func (t *Transcoder) Encode(dst, src []byte) int {
	n := t.enc.EncodedLen(len(src))
	if len(dst) < n {
		panic(fmt.Sprintf("parallel: encode output buffer too small: need %d bytes, have %d", n, len(dst)))
	}
	segs := workerpool.Segments(len(src), 3, t.segSize)
	b64.Logger().Debug("parallel encode",
		zap.Int("bytes", len(src)),
		zap.Int("segments", len(segs)),
		zap.String("kernel", t.enc.KernelName()))

	t.pool.Each(segs, func(s workerpool.Segment) {
		var st b64.State
		t.enc.EncodeChunk(dst[s.Start/3*4:], src[s.Start:s.End], &st, true)
	})
	return n
}

// EncodeToString returns the padded encoding of src.
func (t *Transcoder) EncodeToString(src []byte) string {
	buf := make([]byte, t.enc.EncodedLen(len(src)))
	t.Encode(buf, src)
	return string(buf)
}

type segResult struct {
	n   int
	end bool
	err error
}

// Decode decodes the complete stream src into dst. dst must hold
// DecodedLen(len(src)) bytes. Errors are reported as by b64.Encoding.Decode:
// a *b64.CorruptInputError with offsets into src and the number of bytes of
// dst that hold the valid prefix, or b64.ErrTruncated.
func (t *Transcoder) Decode(dst, src []byte) (int, error) {
	if need := t.enc.DecodedLen(len(src)); len(dst) < need {
		panic(fmt.Sprintf("parallel: decode output buffer too small: need %d bytes, have %d", need, len(dst)))
	}
	segs := workerpool.Segments(len(src), 4, t.segSize/3*4)
	b64.Logger().Debug("parallel decode",
		zap.Int("symbols", len(src)),
		zap.Int("segments", len(segs)),
		zap.String("kernel", t.enc.KernelName()))

	results := make([]segResult, len(segs))
	states := make([]b64.State, len(segs))
	t.pool.Each(segs, func(s workerpool.Segment) {
		n, status, err := t.enc.DecodeChunk(dst[s.Start/4*3:], src[s.Start:s.End], &states[s.Index])
		results[s.Index] = segResult{n: n, end: status == b64.StatusEnd, err: err}
	})

	// Segments are resolved in order: the first failure is the one a
	// sequential decode would have reported.
	for i, s := range segs {
		r := results[i]
		written := s.Start/4*3 + r.n
		if r.err != nil {
			var cie *b64.CorruptInputError
			if errors.As(r.err, &cie) {
				return written, &b64.CorruptInputError{
					Offset:  s.Start + cie.Offset,
					Written: s.Start/4*3 + cie.Written,
					Symbol:  cie.Symbol,
				}
			}
			return written, r.err
		}
		if r.end && i < len(segs)-1 {
			// Padding closed the stream but more input follows.
			return written, &b64.CorruptInputError{Offset: s.End, Written: written, Symbol: src[s.End]}
		}
	}
	if len(segs) == 0 {
		return 0, nil
	}
	last := segs[len(segs)-1]
	return last.Start/4*3 + results[len(segs)-1].n, t.enc.DecodeEnd(&states[len(segs)-1])
}

// DecodeString returns the bytes represented by the complete stream s.
func (t *Transcoder) DecodeString(s string) ([]byte, error) {
	buf := make([]byte, t.enc.DecodedLen(len(s)))
	n, err := t.Decode(buf, []byte(s))
	return buf[:n], err
}
