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

import "encoding/binary"

// Word kernel: six input bytes and eight symbols move through one 64-bit
// word per step.
//
// Encode looks symbols up in pairs from a 4096-entry table indexed by 12
// bits. Decode looks each symbol up in one of four tables holding its value
// already shifted into place, so a group is the OR of four loads. Anything
// outside the alphabet, padding included, sets the top byte.

const (
	swarEncodeBlock = 24 // bytes in, 32 symbols out
	swarDecodeBlock = 32 // symbols in, 24 bytes out

	swarInvalid uint32 = 0xFF000000
)

func init() {
	registerKernel(&Kernel{
		Level:        DispatchSWAR,
		Rank:         10,
		Requires:     CapWord64,
		EncodeBlock:  swarEncodeBlock,
		DecodeBlock:  swarDecodeBlock,
		encodeBlocks: swarEncodeBlocks,
		decodeBlocks: swarDecodeBlocks,
	})
}

type swarTables struct {
	// pairs[v] holds the symbols of the 12-bit value v, first symbol in
	// the low byte.
	pairs [4096]uint16

	// decode[k][c] is the value of symbol c placed as the k-th symbol of
	// a 24-bit group, or swarInvalid.
	decode [4][256]uint32
}

func newSWARTables(a *Alphabet) *swarTables {
	t := &swarTables{}
	for v := range t.pairs {
		t.pairs[v] = uint16(a.encode[v>>6]) | uint16(a.encode[v&0x3F])<<8
	}
	for c, q := range a.decode {
		for k := range 4 {
			if q >= paddingSymbol {
				t.decode[k][c] = swarInvalid
			} else {
				t.decode[k][c] = uint32(q) << (18 - 6*k)
			}
		}
	}
	return t
}

// encode48 encodes the 48-bit group g into eight symbols, first symbol in
// the low byte.
func (t *swarTables) encode48(g uint64) uint64 {
	return uint64(t.pairs[g>>36&0xFFF]) |
		uint64(t.pairs[g>>24&0xFFF])<<16 |
		uint64(t.pairs[g>>12&0xFFF])<<32 |
		uint64(t.pairs[g&0xFFF])<<48
}

func swarEncodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	t := a.swar
	if t == nil {
		return 0, 0
	}
	for len(src)-nsrc >= swarEncodeBlock && len(dst)-ndst >= swarEncodeBlock/3*4 {
		s := (*[swarEncodeBlock]byte)(src[nsrc:])
		d := (*[swarEncodeBlock / 3 * 4]byte)(dst[ndst:])
		for j := 0; j < 4; j++ {
			g := uint64(binary.BigEndian.Uint32(s[6*j:]))<<16 | uint64(binary.BigEndian.Uint16(s[6*j+4:]))
			binary.LittleEndian.PutUint64(d[8*j:], t.encode48(g))
		}
		nsrc += swarEncodeBlock
		ndst += swarEncodeBlock / 3 * 4
	}
	return nsrc, ndst
}

// group24 decodes the four symbols of s. The result has swarInvalid bits
// set when any of them is not an alphabet symbol.
func (t *swarTables) group24(s *[4]byte) uint32 {
	return t.decode[0][s[0]] | t.decode[1][s[1]] | t.decode[2][s[2]] | t.decode[3][s[3]]
}

// swarDecodeBlocks validates a whole block before storing any of it, so a
// refused block leaves dst untouched past the previous one.
func swarDecodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	t := a.swar
	if t == nil {
		return 0, 0
	}
	var groups [8]uint32
	for len(src)-nsrc >= swarDecodeBlock && len(dst)-ndst >= swarDecodeBlock/4*3 {
		s := (*[swarDecodeBlock]byte)(src[nsrc:])
		var check uint32
		for j := range groups {
			groups[j] = t.group24((*[4]byte)(s[4*j:]))
			check |= groups[j]
		}
		if check&swarInvalid != 0 {
			return nsrc, ndst
		}
		d := (*[swarDecodeBlock / 4 * 3]byte)(dst[ndst:])
		for j := 0; j < 4; j++ {
			g0, g1 := groups[2*j], groups[2*j+1]
			binary.BigEndian.PutUint32(d[6*j:], g0<<8|g1>>16)
			binary.BigEndian.PutUint16(d[6*j+4:], uint16(g1))
		}
		nsrc += swarDecodeBlock
		ndst += swarDecodeBlock / 4 * 3
	}
	return nsrc, ndst
}
