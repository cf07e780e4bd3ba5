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

// EncodedChunkLen returns the number of symbols an EncodeChunk call writes
// for n input bytes, given the State it starts from.
func EncodedChunkLen(st *State, n int, final bool) int {
	p := int(st.pending)
	total := p + n
	if final && total%3 != 0 {
		return (total+2)/3*4 - p
	}
	// A partial group has already emitted one symbol per pending byte.
	return total/3*4 + total%3 - p
}

// DecodedChunkLen returns the maximum number of bytes a DecodeChunk call
// writes for n input symbols, given the State it starts from.
func DecodedChunkLen(st *State, n int) int {
	p := int(st.pending)
	return decodedLen(p+n) - decodedLen(p)
}

// decodedLen is the byte count of n unpadded symbols.
func decodedLen(n int) int {
	return n/4*3 + [4]int{0, 0, 1, 2}[n%4]
}

func checkDst(op string, dst []byte, need int) {
	if len(dst) < need {
		panic(fmt.Sprintf("b64: %s output buffer too small: need %d bytes, have %d", op, need, len(dst)))
	}
}

// encodeChunk is the composition every kernel goes through: finish the group
// left by the previous call, let the kernel transcode whole blocks, then
// hand the remainder to the scalar state machine, which leaves st ready for
// the next call.
func encodeChunk(k *Kernel, a *Alphabet, dst, src []byte, st *State, final bool) int {
	checkDst("encode", dst, EncodedChunkLen(st, len(src), final))
	enc := &a.encode

	o, i := 0, 0
	if st.pending != 0 {
		i = min(len(src), 3-int(st.pending))
		o = baseEncodeStream(dst, src[:i], st, enc)
	}
	if st.pending == 0 && len(src)-i >= k.EncodeBlock {
		ns, nd := k.encodeBlocks(dst[o:], src[i:], a)
		i += ns
		o += nd
	}
	o += baseEncodeStream(dst[o:], src[i:], st, enc)
	if final {
		o += baseEncodeFinal(dst[o:], st, enc)
	}
	return o
}

// decodeChunk mirrors encodeChunk. It works on a copy of the State and only
// stores it back when the call succeeds.
func decodeChunk(k *Kernel, a *Alphabet, dst, src []byte, st *State) (int, Status, error) {
	switch st.eof {
	case eofEnded:
		if len(src) == 0 {
			return 0, StatusEnd, nil
		}
		return 0, StatusInvalid, &CorruptInputError{Offset: 0, Symbol: src[0]}
	case eofAwaitPad:
		return decodeSecondPad(src, st)
	}

	checkDst("decode", dst, DecodedChunkLen(st, len(src)))
	dec := &a.decode
	local := *st

	var (
		o, i   int
		status = StatusContinue
	)
	if local.pending != 0 {
		o, i, status = baseDecodeStream(dst, src, min(len(src), 4-int(local.pending)), &local, dec)
	}
	for status == StatusContinue && local.eof == eofNone && i < len(src) {
		if local.pending == 0 && len(src)-i >= k.DecodeBlock {
			ns, nd := k.decodeBlocks(dst[o:], src[i:], a)
			i += ns
			o += nd
			if i == len(src) {
				break
			}
		}
		// The kernel stops at the first block holding padding or an invalid
		// symbol. The scalar machine resolves that block, or the short
		// remainder, and the kernel resumes after it.
		var w, n int
		w, n, status = baseDecodeStream(dst[o:], src[i:], min(len(src)-i, k.DecodeBlock), &local, dec)
		o += w
		i += n
	}

	if status == StatusInvalid {
		return o, StatusInvalid, &CorruptInputError{Offset: i, Written: o, Symbol: src[i]}
	}
	*st = local
	return o, status, nil
}

// decodeSecondPad resumes a stream that stopped between its two '='.
func decodeSecondPad(src []byte, st *State) (int, Status, error) {
	switch {
	case len(src) == 0:
		return 0, StatusContinue, nil
	case src[0] != Padding:
		return 0, StatusInvalid, &CorruptInputError{Offset: 0, Symbol: src[0]}
	case len(src) > 1:
		return 0, StatusInvalid, &CorruptInputError{Offset: 1, Symbol: src[1]}
	}
	*st = State{eof: eofEnded}
	return 0, StatusEnd, nil
}

// decodeEnd checks that a decode stream stopped on a group boundary.
func decodeEnd(st *State) error {
	switch {
	case st.eof == eofAwaitPad:
		return fmt.Errorf("%w: missing final padding", ErrTruncated)
	case st.eof == eofNone && st.pending != 0:
		return fmt.Errorf("%w: %d symbols of an incomplete group", ErrTruncated, st.pending)
	}
	return nil
}
