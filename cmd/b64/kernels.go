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

package main

import (
	"fmt"

	"github.com/ajroetker/go-base64/b64"
	"github.com/spf13/cobra"
)

func newKernelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the kernels compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "capabilities: %s\n", b64.Capabilities())
			if b64.NoSimdEnv() {
				fmt.Fprintln(out, "B64_NO_SIMD is set")
			}
			fmt.Fprintf(out, "%-8s %4s  %-12s %-9s %s\n", "KERNEL", "RANK", "REQUIRES", "SUPPORTED", "BLOCK")
			for _, k := range b64.Kernels() {
				mark := ""
				if k.Name() == a.enc.KernelName() {
					mark = " *"
				}
				fmt.Fprintf(out, "%-8s %4d  %-12s %-9t %d/%d%s\n",
					k.Name(), k.Rank, k.Requires, k.Supported(), k.EncodeBlock, k.DecodeBlock, mark)
			}
			return nil
		},
	}
}
