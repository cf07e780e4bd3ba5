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
	"os"

	"github.com/ajroetker/go-base64/b64"
	"gopkg.in/yaml.v3"
)

const defaultChunk = 48 << 10

// Config holds the settings of one run. It is read from the YAML file named
// by --config and then overridden by any flag given explicitly.
type Config struct {
	Kernel   string          `yaml:"kernel"`
	Chunk    int             `yaml:"chunk"`
	Wrap     int             `yaml:"wrap"`
	URL      bool            `yaml:"url"`
	Workers  int             `yaml:"workers"`
	Alphabet *AlphabetConfig `yaml:"alphabet"`
}

// AlphabetConfig names the two symbols of a custom alphabet.
type AlphabetConfig struct {
	C62 string `yaml:"c62"`
	C63 string `yaml:"c63"`
}

func defaultConfig() Config {
	return Config{Chunk: defaultChunk}
}

// loadConfig reads a YAML file over the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// encoding builds the b64.Encoding the config describes.
func (c *Config) encoding() (*b64.Encoding, error) {
	if c.Chunk <= 0 {
		return nil, fmt.Errorf("chunk must be positive, got %d", c.Chunk)
	}
	if c.Wrap < 0 {
		return nil, fmt.Errorf("wrap must not be negative, got %d", c.Wrap)
	}

	a := b64.StdAlphabet
	switch {
	case c.Alphabet != nil && c.URL:
		return nil, fmt.Errorf("url and alphabet are mutually exclusive")
	case c.Alphabet != nil:
		if len(c.Alphabet.C62) != 1 || len(c.Alphabet.C63) != 1 {
			return nil, fmt.Errorf("alphabet symbols must be single bytes, got %q and %q", c.Alphabet.C62, c.Alphabet.C63)
		}
		var err error
		if a, err = b64.NewAlphabet(c.Alphabet.C62[0], c.Alphabet.C63[0]); err != nil {
			return nil, err
		}
	case c.URL:
		a = b64.URLAlphabet
	}

	var opts []b64.Option
	if c.Kernel != "" {
		level, err := b64.ParseDispatchLevel(c.Kernel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, b64.WithKernel(level))
	}
	return b64.NewEncoding(a, opts...)
}
