// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/matcher"
)

const (
	// DefaultSuffix is appended to a source path when no output is given
	DefaultSuffix = ".replaced"

	// DefaultCommentPrefix marks a full-line comment in a script
	DefaultCommentPrefix = "//"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Script                string   `json:"script" yaml:"script" hcl:"script,optional"`
	Inputs                []string `json:"inputs" yaml:"inputs" hcl:"inputs,optional"`
	Output                string   `json:"output,omitempty" yaml:"output,omitempty" hcl:"output,optional"`
	Suffix                string   `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`
	Engine                string   `json:"engine,omitempty" yaml:"engine,omitempty" hcl:"engine,optional"`
	CommentPrefix         string   `json:"comment_prefix,omitempty" yaml:"comment_prefix,omitempty" hcl:"comment_prefix,optional"`
	CommentPrefixDisabled bool     `json:"comment_prefix_disabled,omitempty" yaml:"comment_prefix_disabled,omitempty" hcl:"comment_prefix_disabled,optional"`
	Async                 bool     `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Workers               int      `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`

	location string
}

// 🎯 Load loads the configuration from a file.
// Relative script and input paths are resolved against the file's directory.
// Required fields are not checked here so flags can still fill them in; call
// Validate once all overrides are applied.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving config path: %w", err)
	}
	cfg.location = abs
	cfg.resolvePaths()

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	return cfg, nil
}

// Location returns the absolute path of the file this config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// Dir returns the directory relative paths are resolved against
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

func (cfg *Config) resolvePaths() {
	if cfg.location == "" {
		return
	}
	dir := cfg.Dir()
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	cfg.Script = resolve(cfg.Script)
	cfg.Output = resolve(cfg.Output)
	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = resolve(in)
	}
}

// ApplyDefaults fills in every unset optional field
func (cfg *Config) ApplyDefaults() {
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.Engine == "" {
		cfg.Engine = matcher.Default().Name()
	}
	if cfg.CommentPrefix == "" && !cfg.CommentPrefixDisabled {
		cfg.CommentPrefix = DefaultCommentPrefix
	}
	if cfg.CommentPrefixDisabled {
		cfg.CommentPrefix = ""
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// 🔍 Validate applies defaults and checks if the configuration is valid
func (cfg *Config) Validate() error {
	if err := cfg.ValidateScript(); err != nil {
		return err
	}

	if len(cfg.Inputs) == 0 {
		return errors.Errorf("at least one input is required")
	}
	for i, in := range cfg.Inputs {
		if strings.TrimSpace(in) == "" {
			return errors.Errorf("inputs[%d] is empty", i)
		}
	}
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}

	return nil
}

// ValidateScript applies defaults and checks only what parsing the script
// needs, for commands that never touch inputs
func (cfg *Config) ValidateScript() error {
	cfg.ApplyDefaults()

	if cfg.Script == "" {
		return errors.Errorf("script is required")
	}
	if _, err := matcher.Lookup(cfg.Engine); err != nil {
		return errors.Errorf("engine: %w", err)
	}
	if strings.ContainsAny(cfg.CommentPrefix, "\r\n") {
		return errors.Errorf("comment_prefix must not contain line breaks")
	}

	cfg.Script = filepath.Clean(cfg.Script)

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	engine := cfg.Engine
	if engine == "" {
		engine = matcher.Default().Name()
	}
	dest := cfg.Output
	if dest == "" {
		suffix := cfg.Suffix
		if suffix == "" {
			suffix = DefaultSuffix
		}
		dest = "*" + suffix
	}
	return fmt.Sprintf("%s[%s]: %s -> %s", cfg.Script, engine, strings.Join(cfg.Inputs, ","), dest)
}
