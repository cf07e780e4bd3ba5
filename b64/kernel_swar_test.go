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
	"encoding/binary"
	"testing"
)

func TestSWARTables(t *testing.T) {
	a, err := NewAlphabet('!', '~')
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []*Alphabet{StdAlphabet, URLAlphabet, a} {
		tb := a.swar
		for v := range 4096 {
			p := tb.pairs[v]
			if byte(p) != a.encode[v>>6] || byte(p>>8) != a.encode[v&0x3F] {
				t.Fatalf("%q: pairs[%d] = %#04x", a.Symbols(), v, p)
			}
		}
		for v := range 64 {
			s := [4]byte{a.encode[v], 'A', 'A', a.encode[63-v]}
			if got, want := tb.group24(&s), uint32(v)<<18|uint32(63-v); got != want {
				t.Errorf("%q: group24(%q) = %#x, want %#x", a.Symbols(), s, got, want)
			}
		}
		for _, bad := range []byte{'=', '$', 0x80, 0xFF, '@', '[', '`', '{'} {
			if a.Valid(bad) {
				continue
			}
			for k := range 4 {
				s := [4]byte{'A', 'B', 'C', 'D'}
				s[k] = bad
				if tb.group24(&s)&swarInvalid == 0 {
					t.Errorf("%q: group24 accepted %q at %d", a.Symbols(), bad, k)
				}
			}
		}
	}
}

func TestSWAREncode48(t *testing.T) {
	// "Man" twice.
	g := uint64(0x4D616E4D616E)
	var got [8]byte
	binary.LittleEndian.PutUint64(got[:], StdAlphabet.swar.encode48(g))
	if string(got[:]) != "TWFuTWFu" {
		t.Errorf("encode48 = %q, want %q", got[:], "TWFuTWFu")
	}
}

func TestSWARDecodeBlocksStopsAtPadding(t *testing.T) {
	src := []byte("QUJDQUJDQUJDQUJDQUJDQUJDQUJDQUJD" + "QUJDQUJDQUJDQUJDQUJDQUJDQUJDQU==")
	dst := make([]byte, 48)
	ns, nd := swarDecodeBlocks(dst, src, StdAlphabet)
	if ns != 32 || nd != 24 {
		t.Errorf("swarDecodeBlocks consumed %d/%d, want 32/24", ns, nd)
	}
	if string(dst[:nd]) != "ABCABCABCABCABCABCABCABC" {
		t.Errorf("decoded %q", dst[:nd])
	}
	for _, b := range dst[nd:] {
		if b != 0 {
			t.Fatal("swarDecodeBlocks wrote past the refused block")
		}
	}
}

func TestSWARZeroAlphabet(t *testing.T) {
	dst := make([]byte, 64)
	src := make([]byte, 48)
	if ns, nd := swarEncodeBlocks(dst, src, &Alphabet{}); ns != 0 || nd != 0 {
		t.Errorf("swarEncodeBlocks on a zero Alphabet consumed %d/%d", ns, nd)
	}
	if ns, nd := swarDecodeBlocks(dst, src, &Alphabet{}); ns != 0 || nd != 0 {
		t.Errorf("swarDecodeBlocks on a zero Alphabet consumed %d/%d", ns, nd)
	}
}
