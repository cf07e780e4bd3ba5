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

// Command b64 encodes and decodes base64 streams.
//
// Usage:
//
//	b64 encode [file]            # stdin when no file is given
//	b64 decode [file]
//	b64 kernels                  # list compiled kernels and CPU support
//
// Flags shared by every subcommand:
//
//	--kernel scalar|swar|avx2    pin a kernel instead of the dispatcher's pick
//	--chunk N                    bytes per engine call
//	--wrap N                     wrap encoded lines at N columns (0: no wrap)
//	--url                        use the URL and filename safe alphabet
//	--workers N                  transcode the whole input on N workers
//	--config file.yaml           defaults for the flags above
//	--verbose                    development logging
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
