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
	"context"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		script         string
		want           string
		wantCount      int
		wantRuleCounts []int
		wantModified   bool
	}{
		{
			name:           "simple_replacement",
			content:        "Hello World",
			script:         `"World" -> "Universe"`,
			want:           "Hello Universe",
			wantCount:      1,
			wantRuleCounts: []int{1},
			wantModified:   true,
		},
		{
			name:           "multiple_replacements",
			content:        "Hello World World",
			script:         `"World" -> "Universe"`,
			want:           "Hello Universe Universe",
			wantCount:      2,
			wantRuleCounts: []int{2},
			wantModified:   true,
		},
		{
			name:           "cascading_counts",
			content:        "ab",
			script:         "\"a\" -> \"b\"\n\"b\" -> \"c\"",
			want:           "cc",
			wantCount:      3,
			wantRuleCounts: []int{1, 2},
			wantModified:   true,
		},
		{
			name:           "no_match",
			content:        "Hello World",
			script:         `"Goodbye" -> "Hi"`,
			want:           "Hello World",
			wantCount:      0,
			wantRuleCounts: []int{0},
			wantModified:   false,
		},
		{
			name:           "normalization_only",
			content:        "Hello\r\nWorld",
			script:         `"Goodbye" -> "Hi"`,
			want:           "Hello\nWorld",
			wantCount:      0,
			wantRuleCounts: []int{0},
			wantModified:   true,
		},
		{
			name:           "empty_content",
			content:        "",
			script:         `"World" -> "Universe"`,
			want:           "",
			wantCount:      0,
			wantRuleCounts: []int{0},
			wantModified:   false,
		},
		{
			name:           "empty_rules",
			content:        "Hello World",
			script:         "// no rules",
			want:           "Hello World",
			wantCount:      0,
			wantRuleCounts: []int{},
			wantModified:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustParse(t, tt.script)

			replacer := NewReplacer()
			result, err := replacer.ReplaceText(context.Background(), strings.NewReader(tt.content), rs)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)

			counts := []int{}
			for _, rc := range result.RuleCounts {
				counts = append(counts, rc.Count)
			}
			assert.Equal(t, tt.wantRuleCounts, counts)

			assert.Equal(t, Transmorgify(rs, tt.content), string(result.ModifiedContent),
				"ReplaceText and Transmorgify must agree")
		})
	}
}

func TestReplacer_RuleCountsCarryLines(t *testing.T) {
	rs := mustParse(t, "// header\n\"a\" -> \"b\"\n\n\"c\" -> \"d\"")

	result, err := NewReplacer().ReplaceText(context.Background(), strings.NewReader("ac"), rs)
	require.NoError(t, err)

	require.Len(t, result.RuleCounts, 2)
	assert.Equal(t, RuleCount{Line: 2, Pattern: "a", Count: 1}, result.RuleCounts[0])
	assert.Equal(t, RuleCount{Line: 4, Pattern: "c", Count: 1}, result.RuleCounts[1])
}

func TestReplacer_ReadError(t *testing.T) {
	rs := mustParse(t, `"a" -> "b"`)
	boom := errors.New("boom")

	result, err := NewReplacer().ReplaceText(context.Background(), iotest.ErrReader(boom), rs)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reading content")
}
