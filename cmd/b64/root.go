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
	"os"

	"github.com/ajroetker/go-base64/b64"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	flags      Config // values bound to the command line

	cfg Config
	enc *b64.Encoding
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultConfig()}
	root := &cobra.Command{
		Use:           "b64",
		Short:         "Streaming base64 encoder and decoder",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML file with defaults for the other flags")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "development logging to stderr")
	pf.StringVar(&a.flags.Kernel, "kernel", "", "pin a kernel: scalar, swar or avx2")
	pf.IntVar(&a.flags.Chunk, "chunk", defaultChunk, "bytes per engine call")
	pf.IntVar(&a.flags.Wrap, "wrap", 0, "wrap encoded output at this many columns (0: no wrap)")
	pf.BoolVar(&a.flags.URL, "url", false, "use the URL and filename safe alphabet")
	pf.IntVar(&a.flags.Workers, "workers", 0, "transcode the whole input on this many workers (0: stream)")

	root.AddCommand(newEncodeCmd(a), newDecodeCmd(a), newKernelsCmd(a))
	return root
}

// setup resolves the configuration and builds the logger and encoding.
func (a *app) setup(flags *pflag.FlagSet) error {
	a.cfg = defaultConfig()
	if a.configPath != "" {
		cfg, err := loadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if flags.Changed("kernel") {
		a.cfg.Kernel = a.flags.Kernel
	}
	if flags.Changed("chunk") {
		a.cfg.Chunk = a.flags.Chunk
	}
	if flags.Changed("wrap") {
		a.cfg.Wrap = a.flags.Wrap
	}
	if flags.Changed("url") {
		a.cfg.URL = a.flags.URL
	}
	if flags.Changed("workers") {
		a.cfg.Workers = a.flags.Workers
	}

	log, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.log = log
	b64.SetLogger(log)

	if a.enc, err = a.cfg.encoding(); err != nil {
		return err
	}
	a.log.Debug("configured",
		zap.String("kernel", a.enc.KernelName()),
		zap.Int("chunk", a.cfg.Chunk),
		zap.Int("wrap", a.cfg.Wrap),
		zap.Int("workers", a.cfg.Workers),
		zap.String("alphabet", a.enc.Alphabet().Symbols()[62:]))
	return nil
}

// newLogger returns a development logger when verbose and otherwise a
// production logger that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openInput returns the file named by args, or the command's stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
