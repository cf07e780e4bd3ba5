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

//go:build amd64 && goexperiment.simd

package b64

import "simd/archsimd"

// AVX2 kernel on 32-byte vectors. Byte moves use PermuteOrZeroGrouped
// (VPSHUFB), which permutes within each 128-bit half, so every half carries
// four 3-byte groups or four 4-symbol groups on its own.
//
// Merge semantics: a.Merge(b, mask) returns a where mask is set, b elsewhere.

const (
	avx2EncodeBlock = 24
	avx2DecodeBlock = 32

	// Encode loads start 4 bytes before the block.
	avx2EncodeLead = 4
)

func init() {
	registerKernel(&Kernel{
		Level:        DispatchAVX2,
		Rank:         20,
		Requires:     CapAVX2,
		EncodeBlock:  avx2EncodeBlock,
		DecodeBlock:  avx2DecodeBlock,
		encodeBlocks: avx2EncodeBlocks,
		decodeBlocks: avx2DecodeBlocks,
	})
}

var (
	// Lays out each 3-byte group as b1 b0 b2 b1 in a 32-bit lane. The low
	// half reads bytes 4..15 of the load, the high half bytes 0..11.
	avx2EncodeShuffle = [32]int8{
		5, 4, 6, 5, 8, 7, 9, 8, 11, 10, 12, 11, 14, 13, 15, 14,
		1, 0, 2, 1, 4, 3, 5, 4, 7, 6, 8, 7, 10, 9, 11, 10,
	}

	// Takes the three low bytes of each 32-bit lane in big-endian order,
	// packing 12 bytes at the bottom of each half.
	avx2DecodeShuffle = [32]int8{
		2, 1, 0, 6, 5, 4, 10, 9, 8, 14, 13, 12, -1, -1, -1, -1,
		2, 1, 0, 6, 5, 4, 10, 9, 8, 14, 13, 12, -1, -1, -1, -1,
	}
)

// avx2EncodeOffsets returns the table of offsets added to 6-bit values.
// Index 13 serves A-Z, index 0 a-z, indexes 1-10 the digits and 11-12 the
// last two symbols.
func avx2EncodeOffsets(a *Alphabet) archsimd.Uint8x32 {
	var t [32]uint8
	for _, h := range []int{0, 16} {
		t[h] = 'a' - 26
		for i := 1; i <= 10; i++ {
			t[h+i] = '0' + 0x100 - 52
		}
		t[h+11] = a.c62 - 62
		t[h+12] = a.c63 - 63
		t[h+13] = 'A'
	}
	return archsimd.LoadUint8x32Slice(t[:])
}

// avx2Symbols maps 32 6-bit values to symbols with one table shuffle.
func avx2Symbols(v, offsets archsimd.Uint8x32) archsimd.Uint8x32 {
	idx := v.SubSaturated(archsimd.BroadcastUint8x32(51))
	upper := archsimd.BroadcastInt8x32(26).Greater(v.AsInt8x32())
	idx = archsimd.BroadcastUint8x32(13).Merge(idx, upper)
	return v.Add(offsets.PermuteOrZeroGrouped(idx.AsInt8x32()))
}

func avx2EncodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	if len(src) < 6+avx2EncodeBlock+avx2EncodeLead || len(dst) < 8+avx2EncodeBlock/3*4 {
		return 0, 0
	}
	// Two groups through the scalar kernel give the first load its lead.
	nsrc, ndst = baseEncodeBlocks(dst[:8], src[:6], a)

	shuffle := archsimd.LoadInt8x32Slice(avx2EncodeShuffle[:])
	offsets := avx2EncodeOffsets(a)
	f0 := archsimd.BroadcastUint32x8(0x0000003F)
	f1 := archsimd.BroadcastUint32x8(0x00003F00)
	f2 := archsimd.BroadcastUint32x8(0x003F0000)
	f3 := archsimd.BroadcastUint32x8(0x3F000000)
	for len(src)-nsrc >= avx2EncodeBlock+avx2EncodeLead && len(dst)-ndst >= avx2EncodeBlock/3*4 {
		in := archsimd.LoadUint8x32Slice(src[nsrc-avx2EncodeLead:]).PermuteOrZeroGrouped(shuffle)

		// With x = b1 | b0<<8 | b2<<16 | b1<<24 every field is a
		// contiguous run of 6 bits.
		x := in.AsUint32x8()
		fields := x.ShiftAllRight(10).And(f0).
			Or(x.ShiftAllLeft(4).And(f1)).
			Or(x.ShiftAllRight(6).And(f2)).
			Or(x.ShiftAllLeft(8).And(f3))

		avx2Symbols(fields.AsUint8x32(), offsets).StoreSlice(dst[ndst:])
		nsrc += avx2EncodeBlock
		ndst += avx2EncodeBlock / 3 * 4
	}
	return nsrc, ndst
}

// avx2DecodeLUT holds the broadcast bounds and offsets of each symbol
// class.
type avx2DecodeLUT struct {
	upperLo, upperHi archsimd.Int8x32
	lowerLo, lowerHi archsimd.Int8x32
	digitLo, digitHi archsimd.Int8x32
	c62, c63         archsimd.Int8x32

	upper, lower, digit, s62, s63 archsimd.Int8x32
}

func newAVX2DecodeLUT(a *Alphabet) *avx2DecodeLUT {
	b := archsimd.BroadcastInt8x32
	return &avx2DecodeLUT{
		upperLo: b('A' - 1), upperHi: b('Z' + 1),
		lowerLo: b('a' - 1), lowerHi: b('z' + 1),
		digitLo: b('0' - 1), digitHi: b('9' + 1),
		c62:     b(int8(a.c62)),
		c63:     b(int8(a.c63)),
		upper:   b(-'A'),
		lower:   b(26 - 'a'),
		digit:   b(52 - '0'),
		s62:     b(int8(62 - int(a.c62))),
		s63:     b(int8(63 - int(a.c63))),
	}
}

// values maps 32 symbols to 6-bit values. ok is false when any of them is
// not an alphabet symbol. Bytes from 0x80 up are negative and fall in no
// class.
func (l *avx2DecodeLUT) values(x archsimd.Int8x32) (v archsimd.Int8x32, ok bool) {
	upper := x.Greater(l.upperLo).And(l.upperHi.Greater(x))
	lower := x.Greater(l.lowerLo).And(l.lowerHi.Greater(x))
	digit := x.Greater(l.digitLo).And(l.digitHi.Greater(x))
	e62 := x.Equal(l.c62)
	e63 := x.Equal(l.c63)
	if upper.Or(lower).Or(digit).Or(e62).Or(e63).ToBits() != 1<<32-1 {
		return x, false
	}
	off := l.upper
	off = l.lower.Merge(off, lower)
	off = l.digit.Merge(off, digit)
	off = l.s62.Merge(off, e62)
	off = l.s63.Merge(off, e63)
	return x.Add(off), true
}

func avx2DecodeBlocks(dst, src []byte, a *Alphabet) (nsrc, ndst int) {
	lut := newAVX2DecodeLUT(a)
	shuffle := archsimd.LoadInt8x32Slice(avx2DecodeShuffle[:])
	m0 := archsimd.BroadcastUint32x8(0x000000FF)
	m1 := archsimd.BroadcastUint32x8(0x0000FF00)
	m2 := archsimd.BroadcastUint32x8(0x00FF0000)

	var packed [32]byte
	for len(src)-nsrc >= avx2DecodeBlock && len(dst)-ndst >= avx2DecodeBlock/4*3 {
		v, ok := lut.values(archsimd.LoadUint8x32Slice(src[nsrc:]).AsInt8x32())
		if !ok {
			return nsrc, ndst
		}

		// Lane u = s0 | s1<<8 | s2<<16 | s3<<24 becomes the 24-bit group
		// s0<<18 | s1<<12 | s2<<6 | s3.
		u := v.AsUint32x8()
		g := u.And(m0).ShiftAllLeft(18).
			Or(u.And(m1).ShiftAllLeft(4)).
			Or(u.And(m2).ShiftAllRight(10)).
			Or(u.ShiftAllRight(24))
		g.AsUint8x32().PermuteOrZeroGrouped(shuffle).StoreSlice(packed[:])

		d := dst[ndst : ndst+avx2DecodeBlock/4*3]
		copy(d[:12], packed[:12])
		copy(d[12:], packed[16:28])
		nsrc += avx2DecodeBlock
		ndst += avx2DecodeBlock / 4 * 3
	}
	return nsrc, ndst
}
