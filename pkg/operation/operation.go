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

package operation

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/config"
	"github.com/walteh/regexer/pkg/matcher"
	"github.com/walteh/regexer/pkg/script"
	"github.com/walteh/regexer/pkg/status"
	"github.com/walteh/regexer/pkg/text"
)

// 🎯 Operation is one unit of work the CLI can run
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains everything an operation needs
type Options struct {
	// Config is the validated regexer configuration
	Config *config.Config
	// StatusMgr writes outputs and tracks per-file outcomes. Optional.
	StatusMgr *status.Manager
	// Replacer applies rule sets to content. Optional.
	Replacer text.TextReplacer
	// Logger receives structured logs. Optional, defaults to the context logger.
	Logger *zerolog.Logger
}

// 🧱 BaseOperation holds what every operation shares
type BaseOperation struct {
	Config    *config.Config
	StatusMgr *status.Manager
	Replacer  text.TextReplacer
	Logger    *zerolog.Logger
	Runner    *OperationRunner
}

// 🏭 NewBaseOperation validates opts and fills in the optional collaborators
func NewBaseOperation(opts Options) (BaseOperation, error) {
	return newBaseOperation(opts, true)
}

func newBaseOperation(opts Options, needInputs bool) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}

	validate := opts.Config.Validate
	if !needInputs {
		validate = opts.Config.ValidateScript
	}
	if err := validate(); err != nil {
		return BaseOperation{}, errors.Errorf("validating config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	statusMgr := opts.StatusMgr
	if statusMgr == nil {
		statusMgr = status.New(logger)
	}

	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewReplacer()
	}

	return BaseOperation{
		Config:    opts.Config,
		StatusMgr: statusMgr,
		Replacer:  replacer,
		Logger:    logger,
		Runner:    NewRunner(logger, opts.Config.Async, opts.Config.Workers),
	}, nil
}

// 📜 LoadRules reads and parses the configured script. A parse failure is
// returned as is so callers can match *script.ScriptError.
func (op *BaseOperation) LoadRules(ctx context.Context) (*script.RuleSet, error) {
	engine, err := matcher.Lookup(op.Config.Engine)
	if err != nil {
		return nil, errors.Errorf("selecting engine: %w", err)
	}

	src, err := os.ReadFile(op.Config.Script)
	if err != nil {
		return nil, errors.Errorf("reading script: %w", err)
	}

	rs, err := script.Parse(ctx, op.Config.Script, string(src),
		script.WithEngine(engine),
		script.WithCommentPrefix(op.Config.CommentPrefix),
	)
	if err != nil {
		return nil, err
	}

	op.Logger.Debug().
		Str("script", op.Config.Script).
		Str("engine", engine.Name()).
		Int("rules", rs.Len()).
		Msg("rules loaded")

	return rs, nil
}

// 🔍 ResolveInputs expands the configured globs into a sorted list of files.
// Files that already carry the output suffix are skipped so a broad glob does
// not pick up earlier results.
func (op *BaseOperation) ResolveInputs(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range op.Config.Inputs {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding input %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			if !hasMeta(pattern) {
				return nil, errors.Errorf("input not found: %s", pattern)
			}
			op.Logger.Warn().Str("pattern", pattern).Msg("input pattern matched no files")
			continue
		}

		for _, match := range matches {
			if op.Config.Output == "" && op.Config.Suffix != "" && strings.HasSuffix(match, op.Config.Suffix) && hasMeta(pattern) {
				op.Logger.Debug().Str("path", match).Msg("skipping previous output")
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	if len(files) == 0 {
		return nil, errors.Errorf("no input files matched %s", strings.Join(op.Config.Inputs, ", "))
	}

	sort.Strings(files)
	return files, nil
}

// 🎯 Destination returns where the output for source is written
func (op *BaseOperation) Destination(source string) string {
	if op.Config.Output != "" {
		return op.Config.Output
	}
	return source + op.Config.Suffix
}

// checkDestinations rejects an explicit output shared by several inputs
func (op *BaseOperation) checkDestinations(files []string) error {
	if op.Config.Output != "" && len(files) != 1 {
		return errors.Errorf("output %q requires exactly one input, got %d", op.Config.Output, len(files))
	}
	return nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
