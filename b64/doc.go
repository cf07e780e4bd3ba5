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

// Package b64 provides a streaming base64 engine with run-time selected
// kernels.
//
// Every kernel implements the same contract: a scalar reference, a word
// kernel ("swar") moving eight symbols per 64-bit word through wide lookup
// tables, and an AVX2 kernel built on simd/archsimd byte shuffles when the
// toolchain provides it (GOEXPERIMENT=simd on amd64). The kernel
// is chosen once per process from the capabilities of the running CPU.
// Set B64_NO_SIMD=1 to force the scalar kernel.
//
// # Streaming
//
// Encode and decode are resumable. A caller threads one State through
// successive calls and gets output identical to a single call over the
// whole input:
//
//	var st b64.State
//	n := b64.StdEncoding.EncodeChunk(dst, []byte("Ma"), &st, false)
//	n += b64.StdEncoding.EncodeChunk(dst[n:], []byte("n"), &st, true)
//	// dst[:n] == "TWFu"
//
// Output buffers are sized by the caller with EncodedChunkLen and
// DecodedChunkLen. A buffer that is too small is a programming error and
// panics.
//
// # Kernel structure
//
// Each call loads the State, finishes a partially consumed group with the
// scalar state machine, hands whole blocks to the selected kernel, and runs
// the scalar state machine again over the remainder, which also produces
// the State for the next call.
package b64
