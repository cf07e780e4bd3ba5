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

//go:build amd64 && !goexperiment.simd

package b64

import "golang.org/x/sys/cpu"

// Without GOEXPERIMENT=simd the avx2 kernel is not compiled in, so CapAVX2
// is reported for diagnostics only and the dispatcher settles on swar.
func detectCapabilities() Capability {
	c := CapWord64
	if cpu.X86.HasSSSE3 {
		c |= CapSSSE3
	}
	if cpu.X86.HasAVX2 {
		c |= CapAVX2
	}
	return c
}
