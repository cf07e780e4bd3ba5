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

//go:generate go run ../cmd/b64gen -output tables_gen.go

const (
	// Padding is the symbol that fills a short final group.
	Padding = '='

	// Sentinels stored in the decode table.
	invalidSymbol = 0xFF
	paddingSymbol = 0xFE
)

// letters and digits shared by every alphabet; only symbols 62 and 63 vary.
const commonSymbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Alphabet holds the lookup tables for one base64 symbol set.
// An Alphabet is immutable and safe for concurrent use.
type Alphabet struct {
	encode   [64]byte
	decode   [256]byte
	c62, c63 byte

	// Wide tables for the word kernel.
	swar *swarTables
}

var (
	// StdAlphabet is the RFC 4648 alphabet ending in '+' and '/'.
	StdAlphabet = withWideTables(&Alphabet{encode: stdEncodeTable, decode: stdDecodeTable, c62: '+', c63: '/'})

	// URLAlphabet is the RFC 4648 URL and filename safe alphabet ending in '-' and '_'.
	URLAlphabet = withWideTables(&Alphabet{encode: urlEncodeTable, decode: urlDecodeTable, c62: '-', c63: '_'})
)

// NewAlphabet builds an alphabet from A-Z, a-z, 0-9 followed by c62 and c63.
// Both symbols must be printable ASCII, must not be letters, digits or the
// padding symbol, and must differ.
func NewAlphabet(c62, c63 byte) (*Alphabet, error) {
	for _, c := range []byte{c62, c63} {
		switch {
		case c <= ' ' || c >= 0x7F:
			return nil, fmt.Errorf("%w: symbol %q is not printable ASCII", ErrInvalidAlphabet, c)
		case c == Padding:
			return nil, fmt.Errorf("%w: symbol %q is the padding symbol", ErrInvalidAlphabet, c)
		case isAlnum(c):
			return nil, fmt.Errorf("%w: symbol %q is alphanumeric", ErrInvalidAlphabet, c)
		}
	}
	if c62 == c63 {
		return nil, fmt.Errorf("%w: symbols 62 and 63 are both %q", ErrInvalidAlphabet, c62)
	}

	a := &Alphabet{c62: c62, c63: c63}
	copy(a.encode[:], commonSymbols)
	a.encode[62] = c62
	a.encode[63] = c63
	for i := range a.decode {
		a.decode[i] = invalidSymbol
	}
	for i, c := range a.encode {
		a.decode[c] = byte(i)
	}
	a.decode[Padding] = paddingSymbol
	return withWideTables(a), nil
}

func withWideTables(a *Alphabet) *Alphabet {
	a.swar = newSWARTables(a)
	return a
}

// usable reports whether a was built by NewAlphabet or is one of the
// predefined alphabets. A zero Alphabet has no symbol 62.
func (a *Alphabet) usable() bool {
	return a.c62 != 0
}

func isAlnum(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9'
}

// Symbols returns the 64 symbols in value order.
func (a *Alphabet) Symbols() string {
	return string(a.encode[:])
}

// Valid reports whether c is one of the 64 symbols. The padding symbol is
// not.
func (a *Alphabet) Valid(c byte) bool {
	return a.decode[c] < paddingSymbol
}
