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

//go:build arm64

package b64

import "golang.org/x/sys/cpu"

// ARM64 (AArch64) always has NEON (ASIMD); there is no NEON kernel yet, so
// the flag is informational and swar is selected.
func detectCapabilities() Capability {
	c := CapWord64
	if cpu.ARM64.HasASIMD {
		c |= CapASIMD
	}
	return c
}
