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

// Package text applies parsed rule sets to text.
package text

import (
	"strings"

	"github.com/walteh/regexer/pkg/script"
)

const nbsp = "\u00a0"

// 🔄 Transmorgify applies every rule in rs to subject, in order, then normalizes
// the result.
//
// Each rule sees the output of the rule before it, so a later rule can match text
// an earlier rule introduced. A nil or empty rule set only normalizes.
func Transmorgify(rs *script.RuleSet, subject string) string {
	for _, rule := range rs.Rules() {
		subject = rule.Apply(subject)
	}
	return Normalize(subject)
}

// 🧹 Normalize turns \r\n into \n and non-breaking spaces into plain spaces.
//
// A run of carriage returns ending in \n collapses to a single \n, so
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ReplaceAll(s, nbsp, " ")
	if !strings.Contains(s, "\r\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\r' {
			b.WriteByte(s[i])
			i++
			continue
		}

		j := i
		for j < len(s) && s[j] == '\r' {
			j++
		}
		if j < len(s) && s[j] == '\n' {
			// drop the carriage returns, the \n is written next round
			i = j
			continue
		}
		b.WriteString(s[i:j])
		i = j
	}
	return b.String()
}
