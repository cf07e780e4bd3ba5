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
	"io"
	"slices"

	"github.com/ajroetker/go-base64/b64"
	"github.com/ajroetker/go-base64/b64/contrib/parallel"
	"github.com/ajroetker/go-base64/b64/contrib/workerpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			w := newLineWriter(cmd.OutOrStdout(), a.cfg.Wrap)
			if a.cfg.Workers > 0 {
				err = a.encodeParallel(w, in)
			} else {
				err = a.encodeStream(w, in)
			}
			if err != nil {
				return err
			}
			return w.Close()
		},
	}
}

// encodeStream encodes r chunk by chunk, threading one State through the
// calls.
func (a *app) encodeStream(w io.Writer, r io.Reader) error {
	src := make([]byte, a.cfg.Chunk)
	var (
		dst   []byte
		st    b64.State
		total int
		calls int
	)
	for {
		n, err := io.ReadFull(r, src)
		final := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !final {
			return fmt.Errorf("read input: %w", err)
		}

		need := b64.EncodedChunkLen(&st, n, final)
		dst = slices.Grow(dst[:0], need)[:need]
		m := a.enc.EncodeChunk(dst, src[:n], &st, final)
		if _, err := w.Write(dst[:m]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		total += n
		calls++

		if final {
			a.log.Debug("encoded", zap.Int("bytes", total), zap.Int("calls", calls))
			return nil
		}
	}
}

func (a *app) encodeParallel(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	pool := workerpool.New(a.cfg.Workers)
	defer pool.Close()

	tr := parallel.New(a.enc, pool, a.cfg.Chunk)
	dst := make([]byte, a.enc.EncodedLen(len(data)))
	n := tr.Encode(dst, data)
	if _, err := w.Write(dst[:n]); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
