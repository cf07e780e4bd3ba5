// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/ajroetker/go-base64/b64"
	"github.com/ajroetker/go-base64/b64/contrib/workerpool"
	"github.com/google/go-cmp/cmp"
)

func randomBytes(n int) []byte {
	r := rand.New(rand.NewPCG(uint64(n), 7))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	return b
}

func TestEncodeDecode(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, segSize := range []int{3, 10, 48, 1000} {
		tr := New(b64.StdEncoding, pool, segSize)
		for _, n := range []int{0, 1, 2, 3, 4, 47, 48, 49, 1000, 5000} {
			src := randomBytes(n)
			want := b64.StdEncoding.EncodeToString(src)
			got := tr.EncodeToString(src)
			if got != want {
				t.Fatalf("segSize=%d n=%d: parallel encode differs from sequential", segSize, n)
			}
			back, err := tr.DecodeString(got)
			if err != nil {
				t.Fatalf("segSize=%d n=%d: DecodeString: %v", segSize, n, err)
			}
			if diff := cmp.Diff(src, back); diff != "" {
				t.Errorf("segSize=%d n=%d: round trip mismatch (-want +got):\n%s", segSize, n, diff)
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()
	tr := New(b64.StdEncoding, pool, 12) // 16 symbols per segment

	valid := strings.Repeat("QUJD", 10)
	tests := []struct {
		name string
		in   string
	}{
		{"early", "QU*D" + valid},
		{"late", valid + "Q!JD"},
		{"twoErrors", valid[:20] + "$UJD" + valid[:16] + "QU#D"},
		{"paddingMidStream", valid[:12] + "QQ==" + valid},
		{"paddingAtSegmentEnd", valid[:12] + "QQ==" + valid[:16]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantN, wantErr := b64.StdEncoding.Decode(make([]byte, len(tt.in)), []byte(tt.in))
			gotN, gotErr := tr.Decode(make([]byte, len(tt.in)), []byte(tt.in))
			if gotN != wantN {
				t.Errorf("n = %d, want %d", gotN, wantN)
			}
			var want, got *b64.CorruptInputError
			if !errors.As(wantErr, &want) || !errors.As(gotErr, &got) {
				t.Fatalf("errors = %v, %v; want *CorruptInputError", gotErr, wantErr)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("error mismatch (-sequential +parallel):\n%s", diff)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()
	tr := New(b64.URLEncoding, pool, 3)

	_, err := tr.DecodeString("QUJDQUJDQU")
	if !errors.Is(err, b64.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}
