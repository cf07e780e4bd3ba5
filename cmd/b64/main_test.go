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
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajroetker/go-base64/b64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, "Man", "encode")
	require.NoError(t, err)
	assert.Equal(t, "TWFu\n", out)

	out, err = run(t, "", "encode")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestEncodeChunkedMatchesStdlib(t *testing.T) {
	data := strings.Repeat("streaming base64 \xff\xfe\x00", 500)
	want := base64.StdEncoding.EncodeToString([]byte(data)) + "\n"
	for _, args := range [][]string{
		{"encode", "--chunk", "1"},
		{"encode", "--chunk", "7"},
		{"encode", "--chunk", "4096"},
		{"encode", "--kernel", "scalar", "--chunk", "100"},
		{"encode", "--workers", "3", "--chunk", "300"},
	} {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			out, err := run(t, data, args...)
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestEncodeWrap(t *testing.T) {
	out, err := run(t, "foobarfoobar", "encode", "--wrap", "8")
	require.NoError(t, err)
	assert.Equal(t, "Zm9vYmFy\nZm9vYmFy\n", out)

	out, err = run(t, "foobarfoo", "encode", "--wrap", "5")
	require.NoError(t, err)
	assert.Equal(t, "Zm9vY\nmFyZm\n9v\n", out)
}

func TestDecode(t *testing.T) {
	out, err := run(t, "Zm9v\r\nYmFy\n", "decode", "--chunk", "3")
	require.NoError(t, err)
	assert.Equal(t, "foobar", out)

	out, err = run(t, "_-8=", "decode", "--url")
	require.NoError(t, err)
	assert.Equal(t, "\xff\xef", out)
}

func TestDecodeErrors(t *testing.T) {
	for _, workers := range []string{"0", "2"} {
		t.Run("workers="+workers, func(t *testing.T) {
			out, err := run(t, "QUJD\nQUJD\nQU$D", "decode", "--chunk", "6", "--workers", workers)
			var cie *b64.CorruptInputError
			require.True(t, errors.As(err, &cie), "err = %v", err)
			assert.Equal(t, 10, cie.Offset)
			assert.Equal(t, 7, cie.Written)
			assert.Equal(t, byte('$'), cie.Symbol)
			assert.Equal(t, "ABCABCA", out)

			_, err = run(t, "QUJDQU", "decode", "--workers", workers)
			assert.ErrorIs(t, err, b64.ErrTruncated)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b64.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kernel: scalar\nwrap: 4\nalphabet:\n  c62: \".\"\n  c63: \"_\"\n"), 0o644))

	out, err := run(t, "\xfb\xff", "encode", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "._8=\n", out)

	// Flags override the file.
	out, err = run(t, "\xfb\xff", "encode", "--config", path, "--wrap", "0")
	require.NoError(t, err)
	assert.Equal(t, "._8=\n", out)

	require.NoError(t, os.WriteFile(path, []byte("url: true\nalphabet: {c62: \".\", c63: \"_\"}\n"), 0o644))
	_, err = run(t, "x", "encode", "--config", path)
	assert.Error(t, err)
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "", "encode", "--kernel", "sse9")
	assert.Error(t, err)

	_, err = run(t, "", "encode", "--chunk", "0")
	assert.Error(t, err)

	_, err = run(t, "", "encode", "no/such/file")
	assert.Error(t, err)
}

func TestKernels(t *testing.T) {
	out, err := run(t, "", "kernels", "--kernel", "scalar")
	require.NoError(t, err)
	assert.Contains(t, out, "capabilities:")
	assert.Contains(t, out, "scalar")
	assert.Regexp(t, `(?m)^scalar .* \*$`, out)
}

func TestLineWriterExactWidth(t *testing.T) {
	var buf bytes.Buffer
	w := newLineWriter(&buf, 4)
	_, err := w.Write([]byte("TWFu"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "TWFu\n", buf.String())
}
