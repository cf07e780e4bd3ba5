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
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGeneratedTablesUpToDate fails when b64/tables_gen.go was edited by
// hand or the generator changed without regenerating.
func TestGeneratedTablesUpToDate(t *testing.T) {
	want, err := os.ReadFile("../../b64/tables_gen.go")
	if err != nil {
		t.Fatal(err)
	}
	got, err := generate("tables_gen.go", "b64")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("tables_gen.go is stale, run go generate ./b64 (-have +generated):\n%s", diff)
	}
}
