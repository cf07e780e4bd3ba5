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
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/ajroetker/go-base64/b64"
	"github.com/ajroetker/go-base64/b64/contrib/parallel"
	"github.com/ajroetker/go-base64/b64/contrib/workerpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a file or stdin",
		Long: "Decode a file or stdin. Line breaks are ignored; any other byte outside " +
			"the alphabet is an error reported with its offset among the symbols.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			r := lineFilter{r: in}
			if a.cfg.Workers > 0 {
				return a.decodeParallel(cmd.OutOrStdout(), r)
			}
			return a.decodeStream(cmd.OutOrStdout(), r)
		},
	}
}

// decodeStream decodes r chunk by chunk. The valid prefix before an error
// is written out.
func (a *app) decodeStream(w io.Writer, r io.Reader) error {
	src := make([]byte, a.cfg.Chunk)
	var (
		dst    []byte
		st     b64.State
		offset int
		total  int
	)
	for {
		n, err := io.ReadFull(r, src)
		eof := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !eof {
			return fmt.Errorf("read input: %w", err)
		}

		need := b64.DecodedChunkLen(&st, n)
		dst = slices.Grow(dst[:0], need)[:need]
		m, status, derr := a.enc.DecodeChunk(dst, src[:n], &st)
		if _, err := w.Write(dst[:m]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if derr != nil {
			var cie *b64.CorruptInputError
			if errors.As(derr, &cie) {
				derr = &b64.CorruptInputError{Offset: offset + cie.Offset, Written: total + cie.Written, Symbol: cie.Symbol}
			}
			return fmt.Errorf("decode: %w", derr)
		}
		offset += n
		total += m

		if eof {
			a.log.Debug("decoded", zap.Int("symbols", offset), zap.Int("bytes", total), zap.Stringer("status", status))
			if err := a.enc.DecodeEnd(&st); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			return nil
		}
	}
}

func (a *app) decodeParallel(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	pool := workerpool.New(a.cfg.Workers)
	defer pool.Close()

	tr := parallel.New(a.enc, pool, a.cfg.Chunk)
	dst := make([]byte, a.enc.DecodedLen(len(data)))
	n, derr := tr.Decode(dst, data)
	if _, err := w.Write(dst[:n]); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if derr != nil {
		return fmt.Errorf("decode: %w", derr)
	}
	return nil
}
