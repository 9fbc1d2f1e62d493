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

package matcher

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

const (
	NameRE2     = "re2"
	NameRegexp2 = "regexp2"
)

var (
	// RE2 compiles patterns with the standard library regexp package
	RE2 Engine = re2Engine{}

	// Regexp2 compiles patterns with github.com/dlclark/regexp2
	Regexp2 Engine = regexp2Engine{}
)

func init() {
	Register(RE2)
	Register(Regexp2)
}

type re2Engine struct{}

func (re2Engine) Name() string { return NameRE2 }

func (re2Engine) Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &re2Matcher{re: re}, nil
}

type re2Matcher struct {
	re *regexp.Regexp
}

func (m *re2Matcher) ReplaceAll(subject, template string) string {
	return m.re.ReplaceAllString(subject, template)
}

func (m *re2Matcher) Count(subject string) int {
	return len(m.re.FindAllStringIndex(subject, -1))
}

func (m *re2Matcher) String() string {
	return m.re.String()
}

type regexp2Engine struct{}

func (regexp2Engine) Name() string { return NameRegexp2 }

func (regexp2Engine) Compile(pattern string) (Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &regexp2Matcher{re: re}, nil
}

// regexp2Matcher leaves MatchTimeout at its default (no timeout), so matching
// never returns an error.
type regexp2Matcher struct {
	re *regexp2.Regexp
}

func (m *regexp2Matcher) ReplaceAll(subject, template string) string {
	out, err := m.re.Replace(subject, template, -1, -1)
	if err != nil {
		return subject
	}
	return out
}

func (m *regexp2Matcher) Count(subject string) int {
	n := 0
	match, err := m.re.FindStringMatch(subject)
	for err == nil && match != nil {
		n++
		match, err = m.re.FindNextMatch(match)
	}
	return n
}

func (m *regexp2Matcher) String() string {
	return m.re.String()
}
