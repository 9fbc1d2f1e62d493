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

package text

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/script"
)

// RuleCount records how many matches one rule replaced
type RuleCount struct {
	Line    int    // Script line of the rule, 0 if unknown
	Pattern string // Find pattern
	Count   int    // Matches replaced in the text the rule saw
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates the output differs from the input
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// RuleCounts holds one entry per rule, in application order
	RuleCounts []RuleCount

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements and normalization
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a rule set to the content
	ReplaceText(ctx context.Context, content io.Reader, rs *script.RuleSet) (*ReplacementResult, error)
}

var _ TextReplacer = (*Replacer)(nil)

// Replacer implements TextReplacer with Transmorgify semantics, counting
// matches along the way
type Replacer struct{}

// NewReplacer creates a new Replacer
func NewReplacer() *Replacer {
	return &Replacer{}
}

// ReplaceText implements TextReplacer.ReplaceText. The only error is a failure to
// read content.
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader, rs *script.RuleSet) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		RuleCounts:      make([]RuleCount, 0, rs.Len()),
	}

	current := string(originalContent)
	for _, rule := range rs.Rules() {
		count := rule.Count(current)
		if count > 0 {
			current = rule.Apply(current)
		} else {
			logger.Debug().Int("line", rule.Line()).Str("pattern", rule.Pattern()).Msg("rule matched nothing")
		}

		result.RuleCounts = append(result.RuleCounts, RuleCount{
			Line:    rule.Line(),
			Pattern: rule.Pattern(),
			Count:   count,
		})
		result.ReplacementCount += count
	}

	result.ModifiedContent = []byte(Normalize(current))
	result.WasModified = !bytes.Equal(result.OriginalContent, result.ModifiedContent)
	return result, nil
}
