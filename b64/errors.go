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
	"fmt"
)

var (
	// ErrInvalidSymbol is matched by every *CorruptInputError.
	ErrInvalidSymbol = errors.New("b64: invalid symbol")

	// ErrTruncated reports a decode stream that ended inside a group or
	// before its padding was complete.
	ErrTruncated = errors.New("b64: truncated input")

	// ErrKernelUnavailable reports a kernel that is not compiled in or not
	// supported by the running CPU.
	ErrKernelUnavailable = errors.New("b64: kernel unavailable")

	// ErrInvalidAlphabet reports unusable symbols passed to NewAlphabet.
	ErrInvalidAlphabet = errors.New("b64: invalid alphabet")
)

// CorruptInputError describes a symbol that is not in the alphabet, a
// misplaced padding symbol, or input following the final padding.
type CorruptInputError struct {
	// Offset is the index of the offending symbol in the input of the call.
	Offset int

	// Written is the number of valid bytes stored before the error.
	Written int

	// Symbol is the offending input byte.
	Symbol byte
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("b64: invalid symbol %q at offset %d (%d bytes decoded)", e.Symbol, e.Offset, e.Written)
}

// Is makes errors.Is(err, ErrInvalidSymbol) hold.
func (e *CorruptInputError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// Status is the outcome of a decode call.
type Status int

const (
	// StatusContinue means all input was consumed and the stream may go on.
	StatusContinue Status = iota

	// StatusEnd means the final padding was consumed.
	StatusEnd

	// StatusInvalid means the call stopped at an invalid symbol.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusEnd:
		return "end"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
