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
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DispatchLevel identifies a kernel implementation.
type DispatchLevel int

const (
	// DispatchScalar is the portable one-group-at-a-time kernel.
	DispatchScalar DispatchLevel = iota

	// DispatchSWAR processes eight symbols per 64-bit word.
	DispatchSWAR

	// DispatchAVX2 processes eight groups per 256-bit vector.
	DispatchAVX2
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSWAR:
		return "swar"
	case DispatchAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// ParseDispatchLevel is the inverse of DispatchLevel.String.
func ParseDispatchLevel(s string) (DispatchLevel, error) {
	for _, d := range []DispatchLevel{DispatchScalar, DispatchSWAR, DispatchAVX2} {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("b64: unknown kernel %q", s)
}

// Capability is a set of CPU features a kernel may require.
type Capability uint32

const (
	// CapWord64 is set on targets with native 64-bit general purpose registers.
	CapWord64 Capability = 1 << iota

	// CapSSSE3 reports SSSE3 byte shuffles (amd64).
	CapSSSE3

	// CapAVX2 reports usable AVX2 (amd64).
	CapAVX2

	// CapASIMD reports NEON (arm64).
	CapASIMD
)

// String lists the capability names separated by commas.
func (c Capability) String() string {
	names := []string{}
	for _, f := range []struct {
		c    Capability
		name string
	}{
		{CapWord64, "word64"},
		{CapSSSE3, "ssse3"},
		{CapAVX2, "avx2"},
		{CapASIMD, "asimd"},
	} {
		if c&f.c != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Kernel describes one encode/decode implementation pair.
//
// The bulk entry points only ever consume whole blocks. Anything shorter,
// and any block a decode kernel refuses, is left to the scalar state
// machine.
type Kernel struct {
	Level DispatchLevel

	// Rank orders kernels; the dispatcher prefers higher ranks.
	Rank int

	// Requires lists the capabilities the running CPU must report.
	Requires Capability

	// EncodeBlock is the number of input bytes consumed per bulk iteration.
	EncodeBlock int

	// DecodeBlock is the number of input symbols consumed per bulk iteration.
	DecodeBlock int

	encodeBlocks func(dst, src []byte, a *Alphabet) (nsrc, ndst int)
	decodeBlocks func(dst, src []byte, a *Alphabet) (nsrc, ndst int)
}

// Name returns the kernel name, e.g. "avx2".
func (k *Kernel) Name() string {
	return k.Level.String()
}

// Supported reports whether the running CPU can execute the kernel.
func (k *Kernel) Supported() bool {
	return k.supportedBy(Capabilities())
}

func (k *Kernel) supportedBy(caps Capability) bool {
	return caps&k.Requires == k.Requires
}

// kernels holds every kernel compiled into this binary, highest rank first.
// Kernels that cannot be built for the target are simply not registered.
var kernels []*Kernel

func registerKernel(k *Kernel) {
	kernels = append(kernels, k)
	slices.SortStableFunc(kernels, func(a, b *Kernel) int {
		return b.Rank - a.Rank
	})
}

// scalarKernel requires nothing and ranks lowest, so selection cannot fail.
var scalarKernel = &Kernel{
	Level:        DispatchScalar,
	Rank:         0,
	EncodeBlock:  3,
	DecodeBlock:  4,
	encodeBlocks: baseEncodeBlocks,
	decodeBlocks: baseDecodeBlocks,
}

func init() {
	registerKernel(scalarKernel)
}

var (
	capsOnce sync.Once
	caps     Capability

	selectOnce sync.Once
	selected   *Kernel
)

// Capabilities returns the features detected on the running CPU.
// The probe runs once.
func Capabilities() Capability {
	capsOnce.Do(func() {
		caps = detectCapabilities()
	})
	return caps
}

// Select returns the kernel used by encodings that were not pinned to a
// specific kernel. The first call probes the CPU; later calls return the
// cached choice.
func Select() *Kernel {
	selectOnce.Do(func() {
		if NoSimdEnv() {
			selected = scalarKernel
		} else {
			selected = selectKernel(kernels, Capabilities())
		}
		Logger().Debug("b64: kernel selected",
			zap.String("kernel", selected.Name()),
			zap.Stringer("capabilities", Capabilities()),
			zap.Strings("compiled", lo.Map(kernels, func(k *Kernel, _ int) string { return k.Name() })))
	})
	return selected
}

// selectKernel returns the highest ranked kernel whose requirements are met.
// ks must be sorted by descending rank.
func selectKernel(ks []*Kernel, caps Capability) *Kernel {
	k, ok := lo.Find(ks, func(k *Kernel) bool {
		return k.supportedBy(caps)
	})
	if !ok {
		return scalarKernel
	}
	return k
}

// CurrentKernel returns the selected kernel.
func CurrentKernel() *Kernel {
	return Select()
}

// CurrentLevel returns the dispatch level of the selected kernel.
func CurrentLevel() DispatchLevel {
	return Select().Level
}

// CurrentName returns a human-readable name for the selected kernel.
// For example: "avx2", "swar", "scalar".
func CurrentName() string {
	return Select().Name()
}

// Kernels returns the kernels compiled into this binary, highest rank first,
// whether or not the running CPU supports them.
func Kernels() []*Kernel {
	return slices.Clone(kernels)
}

// KernelByLevel returns the kernel for level if it is compiled in and
// supported by the running CPU.
func KernelByLevel(level DispatchLevel) (*Kernel, error) {
	k, ok := lo.Find(kernels, func(k *Kernel) bool {
		return k.Level == level
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s is not compiled in", ErrKernelUnavailable, level)
	}
	if !k.Supported() {
		return nil, fmt.Errorf("%w: %s needs %s, cpu has %s", ErrKernelUnavailable, level, k.Requires, Capabilities())
	}
	return k, nil
}

// NoSimdEnv checks if the B64_NO_SIMD environment variable is set.
// When set, the dispatcher picks the scalar kernel regardless of CPU
// capabilities. This is useful for testing and debugging.
func NoSimdEnv() bool {
	val := os.Getenv("B64_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
