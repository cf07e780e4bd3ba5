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

// eofState tracks decode padding.
type eofState uint8

const (
	eofNone     eofState = iota
	eofAwaitPad          // one '=' seen after two symbols, the second is still due
	eofEnded             // padding complete, the stream accepts no more input
)

// State carries a stream across calls.
//
// pending counts the input units of the current group already consumed:
// bytes when encoding (0-2), symbols when decoding (0-3). carry holds their
// bits that have not been emitted yet. The zero value starts a new stream.
//
// A State belongs to exactly one stream and must not be used by two calls
// at the same time.
type State struct {
	pending uint8
	carry   byte
	eof     eofState
}

// Reset prepares s for a new stream.
func (s *State) Reset() {
	*s = State{}
}

// Pending returns the number of bytes (encode) or symbols (decode) of an
// incomplete group carried into the next call.
func (s *State) Pending() int {
	return int(s.pending)
}

// Ended reports whether a decode stream has consumed its final padding.
func (s *State) Ended() bool {
	return s.eof == eofEnded
}
