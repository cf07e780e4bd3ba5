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

// Scalar reference kernel. Every other kernel must match it byte for byte.
//
// Three bytes become four 6-bit fields:
//
//	field0 = b0[7:2]
//	field1 = b0[1:0] b1[7:4]
//	field2 = b1[3:0] b2[7:6]
//	field3 = b2[5:0]

// baseEncodeBlocks encodes whole 3-byte groups.
func baseEncodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	enc := &a.encode
	for len(src)-nsrc >= 3 && len(dst)-ndst >= 4 {
		s := (*[3]byte)(src[nsrc:])
		d := (*[4]byte)(dst[ndst:])
		val := uint(s[0])<<16 | uint(s[1])<<8 | uint(s[2])
		d[0] = enc[val>>18&0x3F]
		d[1] = enc[val>>12&0x3F]
		d[2] = enc[val>>6&0x3F]
		d[3] = enc[val&0x3F]
		nsrc += 3
		ndst += 4
	}
	return nsrc, ndst
}

// baseDecodeBlocks decodes whole 4-symbol groups and stops before the first
// group holding anything but alphabet symbols, padding included.
func baseDecodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	dec := &a.decode
	for len(src)-nsrc >= 4 && len(dst)-ndst >= 3 {
		s := (*[4]byte)(src[nsrc:])
		q0, q1, q2, q3 := dec[s[0]], dec[s[1]], dec[s[2]], dec[s[3]]
		// Valid values fit in six bits; both sentinels set the top two.
		if (q0|q1|q2|q3)&0xC0 != 0 {
			break
		}
		d := (*[3]byte)(dst[ndst:])
		d[0] = q0<<2 | q1>>4
		d[1] = q1<<4 | q2>>2
		d[2] = q2<<6 | q3
		nsrc += 4
		ndst += 3
	}
	return nsrc, ndst
}

// baseEncodeStream runs the encode state machine over src, emitting every
// complete 6-bit field and leaving the rest in st.
func baseEncodeStream(dst, src []byte, st *State, enc *[64]byte) int {
	o := 0
	pending, carry := st.pending, st.carry
	for _, c := range src {
		switch pending {
		case 0:
			dst[o] = enc[c>>2]
			carry = c << 4 & 0x30
			pending = 1
			o++
		case 1:
			dst[o] = enc[carry|c>>4]
			carry = c << 2 & 0x3C
			pending = 2
			o++
		case 2:
			dst[o] = enc[carry|c>>6]
			dst[o+1] = enc[c&0x3F]
			carry = 0
			pending = 0
			o += 2
		}
	}
	st.pending, st.carry = pending, carry
	return o
}

// baseEncodeFinal flushes the carried bits of a short final group followed
// by its padding, and resets st.
func baseEncodeFinal(dst []byte, st *State, enc *[64]byte) int {
	n := 0
	switch st.pending {
	case 1:
		dst[0] = enc[st.carry]
		dst[1] = Padding
		dst[2] = Padding
		n = 3
	case 2:
		dst[0] = enc[st.carry]
		dst[1] = Padding
		n = 2
	}
	st.Reset()
	return n
}

// baseDecodeStream runs the decode state machine over src[:limit]. Padding
// is judged against all of src: it must end the input of the call.
//
// It returns the bytes written, the symbols consumed and the status. With
// StatusInvalid the consumed count is the offset of the offending symbol and
// st is left untouched.
func baseDecodeStream(dst, src []byte, limit int, st *State, dec *[256]byte) (o, i int, status Status) {
	pending, carry := st.pending, st.carry
	for ; i < limit; i++ {
		q := dec[src[i]]
		switch pending {
		case 0:
			if q >= paddingSymbol {
				return o, i, StatusInvalid
			}
			carry = q << 2
			pending = 1
		case 1:
			if q >= paddingSymbol {
				return o, i, StatusInvalid
			}
			dst[o] = carry | q>>4
			o++
			carry = q << 4
			pending = 2
		case 2:
			if q == paddingSymbol {
				i, status = decodeDoublePad(src, i+1, st, dec)
				return o, i, status
			}
			if q == invalidSymbol {
				return o, i, StatusInvalid
			}
			dst[o] = carry | q>>2
			o++
			carry = q << 6
			pending = 3
		case 3:
			if q == paddingSymbol {
				if i+1 < len(src) {
					return o, i + 1, StatusInvalid
				}
				*st = State{eof: eofEnded}
				return o, len(src), StatusEnd
			}
			if q == invalidSymbol {
				return o, i, StatusInvalid
			}
			dst[o] = carry | q
			o++
			carry = 0
			pending = 0
		}
	}
	st.pending, st.carry = pending, carry
	return o, i, StatusContinue
}

// decodeDoublePad handles the symbols after a '=' in the third position,
// which needs a second '=' as the very last symbol. The second one may
// arrive with the next call.
func decodeDoublePad(src []byte, next int, st *State, dec *[256]byte) (int, Status) {
	switch {
	case next == len(src):
		*st = State{eof: eofAwaitPad}
		return next, StatusContinue
	case dec[src[next]] != paddingSymbol:
		return next, StatusInvalid
	case next+1 < len(src):
		return next + 1, StatusInvalid
	}
	*st = State{eof: eofEnded}
	return len(src), StatusEnd
}
