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

package script

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// lineFormat extracts the quoted find and replace text from a script line.
// Read-only after package initialization.
var lineFormat = regexp.MustCompile(`"([^"]*)"\s*->\s*"([^"]*)"`)

// 📝 Parse parses script into a RuleSet named name.
//
// Per-line outcomes are traced to the zerolog logger carried by ctx, if any.
// The first bad line aborts parsing with a *ScriptError.
func Parse(ctx context.Context, name, script string, opts ...Option) (*RuleSet, error) {
	o := newOptions(opts)
	logger := zerolog.Ctx(ctx).With().Str("script", name).Logger()

	rs := &RuleSet{name: name}
	lines := strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n")

	for i, line := range lines {
		lineNo := i + 1 // editors number lines from 1

		if reason, ok := o.ignored(line); ok {
			logger.Trace().Int("line", lineNo).Str("reason", reason).Msg("line ignored")
			continue
		}

		rule, err := parseLine(line, o)
		if err != nil {
			return nil, &ScriptError{Name: name, Line: lineNo, Err: err}
		}
		rule.line = lineNo

		logger.Trace().Int("line", lineNo).Stringer("rule", rule).Msg("line parsed")
		rs.add(rule)
	}

	logger.Debug().Int("rules", rs.Len()).Msg("script parsed")
	return rs, nil
}

// 🔍 ParseLine parses a single rule line. Comment and blank handling is left
// to Parse; here every line must hold a rule.
func ParseLine(line string, opts ...Option) (*Rule, error) {
	return parseLine(line, newOptions(opts))
}

func parseLine(line string, o *options) (*Rule, error) {
	if strings.Contains(line, "\n") {
		return nil, &LineFormatError{Line: line, Reason: "line contains a line break"}
	}

	m := lineFormat.FindStringSubmatch(line)
	if m == nil {
		return nil, &LineFormatError{Line: line}
	}

	return newRule(m[1], unescapeTemplate(m[2]), o)
}

func (o *options) ignored(line string) (string, bool) {
	if line == "" {
		return "empty", true
	}
	if o.commentPrefix != "" && strings.HasPrefix(line, o.commentPrefix) {
		return "comment", true
	}
	return "", false
}

// unescapeTemplate decodes \n, \r and \\ in one pass. A backslash produced by
// \\ is never read again, so \\n stays a backslash followed by n.
func unescapeTemplate(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 'r':
				b.WriteByte('\r')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
