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
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type ruleSource struct {
	pattern  string
	template string
}

func sources(rs *RuleSet) []ruleSource {
	var out []ruleSource
	for _, r := range rs.Rules() {
		out = append(out, ruleSource{pattern: r.Pattern(), template: r.Template()})
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		script    string
		opts      []Option
		want      []ruleSource
		wantLines []int
	}{
		{
			name:      "single_rule",
			script:    `"hi(.)" -> "bye$1$1"`,
			want:      []ruleSource{{"hi(.)", "bye$1$1"}},
			wantLines: []int{1},
		},
		{
			name:      "ordered_rules",
			script:    "\"a\" -> \"b\"\n\"b\" -> \"c\"",
			want:      []ruleSource{{"a", "b"}, {"b", "c"}},
			wantLines: []int{1, 2},
		},
		{
			name:      "crlf_line_endings",
			script:    "\"a\" -> \"b\"\r\n\r\n\"b\" -> \"c\"\r\n",
			want:      []ruleSource{{"a", "b"}, {"b", "c"}},
			wantLines: []int{1, 3},
		},
		{
			name:      "empty_lines_skipped",
			script:    "\n\n\"a\" -> \"b\"\n\n",
			want:      []ruleSource{{"a", "b"}},
			wantLines: []int{3},
		},
		{
			name:      "comment_lines_skipped",
			script:    "// turn a into b\n\"a\" -> \"b\"\n// done",
			want:      []ruleSource{{"a", "b"}},
			wantLines: []int{2},
		},
		{
			name:      "custom_comment_prefix",
			script:    "# hash comment\n\"a\" -> \"b\"",
			opts:      []Option{WithCommentPrefix("#")},
			want:      []ruleSource{{"a", "b"}},
			wantLines: []int{2},
		},
		{
			name:      "prose_around_rule",
			script:    `swap greetings "hi(.)" -> "bye$1$1" for fun`,
			want:      []ruleSource{{"hi(.)", "bye$1$1"}},
			wantLines: []int{1},
		},
		{
			name:      "no_whitespace_around_arrow",
			script:    `"a"->"b"`,
			want:      []ruleSource{{"a", "b"}},
			wantLines: []int{1},
		},
		{
			name:      "wide_whitespace_around_arrow",
			script:    "\"a\" \t ->   \"b\"",
			want:      []ruleSource{{"a", "b"}},
			wantLines: []int{1},
		},
		{
			name:      "find_text_is_not_unescaped",
			script:    `"a\.b\n" -> "x"`,
			want:      []ruleSource{{`a\.b\n`, "x"}},
			wantLines: []int{1},
		},
		{
			name:      "replace_escapes",
			script:    `"x" -> "1\n2\r3\\4"`,
			want:      []ruleSource{{"x", "1\n2\r3\\4"}},
			wantLines: []int{1},
		},
		{
			name:      "quoted_span_stops_at_first_quote",
			script:    `"x" -> "y" and then "z"`,
			want:      []ruleSource{{"x", "y"}},
			wantLines: []int{1},
		},
		{
			name:      "empty_template",
			script:    `"remove me" -> ""`,
			want:      []ruleSource{{"remove me", ""}},
			wantLines: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Parse(context.Background(), "test.txt", tt.script, tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, rs)

			assert.Equal(t, "test.txt", rs.Name())
			assert.Equal(t, tt.want, sources(rs))

			var lines []int
			for _, r := range rs.Rules() {
				lines = append(lines, r.Line())
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestParse_OnlyBlankAndComments(t *testing.T) {
	tests := []struct {
		name   string
		script string
		opts   []Option
	}{
		{name: "empty_script", script: ""},
		{name: "blank_lines", script: "\n\n\r\n"},
		{name: "comment_lines", script: "// one\n// two"},
		{name: "mixed", script: "// one\n\n// two\r\n"},
		{name: "hash_comments", script: "# one\n\n# two", opts: []Option{WithCommentPrefix("#")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Parse(context.Background(), "empty", tt.script, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, 0, rs.Len())
			assert.Empty(t, rs.Rules())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		opts        []Option
		wantLine    int
		wantFormat  bool
		wantPattern bool
		wantMessage string
	}{
		{
			name:        "prose_after_rule",
			script:      "\"a\" -> \"b\"\njust some prose",
			wantLine:    2,
			wantFormat:  true,
			wantMessage: "failure on line 2 of test.txt",
		},
		{
			name:        "missing_arrow",
			script:      `"a" "b"`,
			wantLine:    1,
			wantFormat:  true,
			wantMessage: "failure on line 1 of test.txt",
		},
		{
			name:        "invalid_pattern",
			script:      "// ok\n\n\"a(\" -> \"b\"",
			wantLine:    3,
			wantPattern: true,
			wantMessage: `compiling pattern "a("`,
		},
		{
			name:        "comments_disabled",
			script:      "// not a comment any more\n\"a\" -> \"b\"",
			opts:        []Option{WithCommentPrefix("")},
			wantLine:    1,
			wantFormat:  true,
			wantMessage: "failure on line 1 of test.txt",
		},
		{
			name:       "whitespace_only_line",
			script:     "\"a\" -> \"b\"\n   \n\"b\" -> \"c\"",
			wantLine:   2,
			wantFormat: true,
		},
		{
			name:       "crlf_numbering",
			script:     "\"a\" -> \"b\"\r\n\"c\" -> \"d\"\r\nbroken\r\n",
			wantLine:   3,
			wantFormat: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Parse(context.Background(), "test.txt", tt.script, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, rs, "no partial rule set on failure")

			var scriptErr *ScriptError
			require.True(t, errors.As(err, &scriptErr), "error should be a *ScriptError")
			assert.Equal(t, tt.wantLine, scriptErr.Line)
			assert.Equal(t, "test.txt", scriptErr.Name)

			if tt.wantFormat {
				assert.ErrorIs(t, err, ErrLineFormat)
				var formatErr *LineFormatError
				assert.True(t, errors.As(err, &formatErr))
			}

			if tt.wantPattern {
				var patternErr *PatternError
				require.True(t, errors.As(err, &patternErr))
				assert.Equal(t, "a(", patternErr.Pattern)
				assert.Error(t, patternErr.Err)
			}

			if tt.wantMessage != "" {
				assert.Contains(t, err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestParse_TracesLines(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	ctx := logger.WithContext(context.Background())

	_, err := Parse(ctx, "traced", "// comment\n\n\"a\" -> \"b\"")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"reason":"comment"`)
	assert.Contains(t, out, `"reason":"empty"`)
	assert.Contains(t, out, `"message":"line parsed"`)
	assert.Contains(t, out, `"script":"traced"`)
}

func TestParse_NoLoggerInContext(t *testing.T) {
	rs, err := Parse(context.Background(), "quiet", "// comment\n\"a\" -> \"b\"")
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Len())
}

func TestParseLine_ProseEquivalence(t *testing.T) {
	want, err := NewRule("hi(.)", "bye$1$1")
	require.NoError(t, err)

	lines := []string{
		`"hi(.)" -> "bye$1$1"`,
		`comments can be left here "hi(.)" -> "bye$1$1"`,
		`"hi(.)" -> "bye$1$1" here, too   `,
		`   also on "hi(.)" -> "bye$1$1" both sides!  `,
	}

	for _, line := range lines {
		got, err := ParseLine(line)
		require.NoError(t, err, "line %q", line)
		assert.True(t, want.Equal(got), "line %q parsed to %s", line, got)
	}
}

func TestParseLine_RejectsLineBreaks(t *testing.T) {
	_, err := ParseLine("\"a\" -> \"b\"\n\"c\" -> \"d\"")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLineFormat)
	assert.Contains(t, err.Error(), "line break")
}

func TestUnescapeTemplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "abc", want: "abc"},
		{name: "newline", in: `x\ny`, want: "x\ny"},
		{name: "carriage_return", in: `x\ry`, want: "x\ry"},
		{name: "backslash", in: `x\\y`, want: `x\y`},
		{name: "escaped_backslash_before_n", in: `a\\nb`, want: `a\nb`},
		{name: "escaped_backslash_before_r", in: `a\\rb`, want: `a\rb`},
		{name: "double_escaped_backslash", in: `a\\\\b`, want: `a\\b`},
		{name: "backslash_then_newline", in: `a\\\nb`, want: "a\\\nb"},
		{name: "unknown_escape_kept", in: `a\tb`, want: `a\tb`},
		{name: "trailing_backslash", in: `a\`, want: `a\`},
		{name: "crlf", in: `line\r\n`, want: "line\r\n"},
		{name: "capture_reference_untouched", in: `$1\n${2}`, want: "$1\n${2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeTemplate(tt.in))
		})
	}
}
