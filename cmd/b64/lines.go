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

import "io"

var newline = []byte{'\n'}

// lineWriter breaks its output into lines of width bytes. A width of 0
// writes a single line. Close ends the last line.
type lineWriter struct {
	w     io.Writer
	width int
	col   int
	wrote bool
}

func newLineWriter(w io.Writer, width int) *lineWriter {
	return &lineWriter{w: w, width: width}
}

func (l *lineWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		l.wrote = true
	}
	if l.width == 0 {
		return l.w.Write(p)
	}
	n := 0
	for len(p) > 0 {
		k := min(len(p), l.width-l.col)
		if _, err := l.w.Write(p[:k]); err != nil {
			return n, err
		}
		n += k
		l.col += k
		p = p[k:]
		if l.col == l.width {
			if _, err := l.w.Write(newline); err != nil {
				return n, err
			}
			l.col = 0
		}
	}
	return n, nil
}

func (l *lineWriter) Close() error {
	if !l.wrote || (l.width > 0 && l.col == 0) {
		return nil
	}
	_, err := l.w.Write(newline)
	return err
}

// lineFilter drops CR and LF from the stream it reads.
type lineFilter struct {
	r io.Reader
}

func (f lineFilter) Read(p []byte) (int, error) {
	for {
		n, err := f.r.Read(p)
		k := 0
		for _, c := range p[:n] {
			if c != '\n' && c != '\r' {
				p[k] = c
				k++
			}
		}
		if k > 0 || n == 0 || err != nil {
			return k, err
		}
	}
}
