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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestEncoderWriter(t *testing.T) {
	src := randomBytes(1, 10000)
	want := StdEncoding.EncodeToString(src)

	for _, step := range []int{1, 2, 5, 3071, 3072, 10000} {
		var buf bytes.Buffer
		w := NewEncoder(StdEncoding, &buf)
		for p := src; len(p) > 0; {
			n := min(step, len(p))
			if _, err := w.Write(p[:n]); err != nil {
				t.Fatal(err)
			}
			p = p[n:]
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		if buf.String() != want {
			t.Errorf("step %d: encoder output differs from EncodeToString", step)
		}
		if _, err := w.Write([]byte("x")); err == nil {
			t.Errorf("step %d: write after Close succeeded", step)
		}
	}
}

func TestDecoderReader(t *testing.T) {
	src := randomBytes(2, 10000)
	text := StdEncoding.EncodeToString(src)

	readers := map[string]func(io.Reader) io.Reader{
		"plain":   func(r io.Reader) io.Reader { return r },
		"oneByte": iotest.OneByteReader,
		"half":    iotest.HalfReader,
		"dataErr": iotest.DataErrReader,
	}
	for name, wrap := range readers {
		t.Run(name, func(t *testing.T) {
			got, err := io.ReadAll(NewDecoder(StdEncoding, wrap(strings.NewReader(text))))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(src, got); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, err := io.ReadAll(NewDecoder(StdEncoding, strings.NewReader("TWFuTW")))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("err = %v, want ErrTruncated", err)
		}
	})

	t.Run("invalidOffset", func(t *testing.T) {
		text := strings.Repeat("QUJD", 2000) + "QU*D"
		got, err := io.ReadAll(NewDecoder(StdEncoding, iotest.HalfReader(strings.NewReader(text))))
		var cie *CorruptInputError
		if !errors.As(err, &cie) {
			t.Fatalf("err = %v, want *CorruptInputError", err)
		}
		want := &CorruptInputError{Offset: 8002, Written: 6001, Symbol: '*'}
		if diff := cmp.Diff(want, cie); diff != "" {
			t.Errorf("error mismatch (-want +got):\n%s", diff)
		}
		if len(got) != 6001 {
			t.Errorf("read %d bytes before the error, want 6001", len(got))
		}
	})
}

func TestEncoderDecoderPipe(t *testing.T) {
	src := randomBytes(3, 50000)
	pr, pw := io.Pipe()
	go func() {
		w := NewEncoder(URLEncoding, pw)
		_, err := w.Write(src)
		if err == nil {
			err = w.Close()
		}
		pw.CloseWithError(err)
	}()
	got, err := io.ReadAll(NewDecoder(URLEncoding, pr))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Error("pipe round trip mismatch")
	}
}
