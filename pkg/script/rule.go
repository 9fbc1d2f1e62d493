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
	"fmt"

	"github.com/walteh/regexer/pkg/matcher"
)

// DefaultCommentPrefix marks a full-line comment unless overridden
const DefaultCommentPrefix = "//"

// 🔧 Option configures rule construction and parsing
type Option func(*options)

type options struct {
	engine        matcher.Engine
	commentPrefix string
}

// WithEngine selects the engine find patterns are compiled with. A nil engine
// selects matcher.Default().
func WithEngine(e matcher.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithCommentPrefix sets the full-line comment marker. An empty prefix disables
// comment lines; only empty lines are skipped.
func WithCommentPrefix(prefix string) Option {
	return func(o *options) {
		o.commentPrefix = prefix
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		engine:        matcher.Default(),
		commentPrefix: DefaultCommentPrefix,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.engine == nil {
		o.engine = matcher.Default()
	}
	return o
}

// 🔄 Rule is a single compiled find and replace directive.
//
// Two rules are equal when their pattern and template are equal; the compiled
// matcher is derived from the pattern and takes no part in identity.
type Rule struct {
	pattern  string
	template string
	matcher  matcher.Matcher
	engine   string
	line     int
}

// 🏭 NewRule compiles pattern and pairs it with template. The template is used
// as given; escape decoding only happens when parsing script lines.
func NewRule(pattern, template string, opts ...Option) (*Rule, error) {
	return newRule(pattern, template, newOptions(opts))
}

func newRule(pattern, template string, o *options) (*Rule, error) {
	m, err := o.engine.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Engine: o.engine.Name(), Err: err}
	}
	return &Rule{
		pattern:  pattern,
		template: template,
		matcher:  m,
		engine:   o.engine.Name(),
	}, nil
}

// Pattern returns the find pattern exactly as written
func (r *Rule) Pattern() string { return r.pattern }

// Template returns the replacement template after escape decoding
func (r *Rule) Template() string { return r.template }

// Engine returns the name of the engine the pattern was compiled with
func (r *Rule) Engine() string { return r.engine }

// Line returns the 1-based script line the rule was parsed from, or 0
func (r *Rule) Line() int { return r.line }

// 🎯 Apply replaces every non-overlapping match of the pattern in subject
func (r *Rule) Apply(subject string) string {
	return r.matcher.ReplaceAll(subject, r.template)
}

// Count returns how many matches Apply would replace in subject
func (r *Rule) Count(subject string) int {
	return r.matcher.Count(subject)
}

// Equal reports whether both rules have the same pattern and template
func (r *Rule) Equal(other *Rule) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.pattern == other.pattern && r.template == other.template
}

func (r *Rule) String() string {
	return fmt.Sprintf("Rule{find: %q, replace: %q}", r.pattern, r.template)
}

// 📚 RuleSet is an ordered list of rules; order is application order
type RuleSet struct {
	name  string
	rules []*Rule
}

// NewRuleSet builds a rule set from already constructed rules
func NewRuleSet(name string, rules ...*Rule) *RuleSet {
	rs := &RuleSet{name: name}
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Name returns the identity of the script the rules came from
func (rs *RuleSet) Name() string {
	if rs == nil {
		return ""
	}
	return rs.name
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Rules returns the rules in application order. The slice is a copy.
func (rs *RuleSet) Rules() []*Rule {
	if rs == nil {
		return nil
	}
	out := make([]*Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Equal compares rule sets rule by rule; names are ignored
func (rs *RuleSet) Equal(other *RuleSet) bool {
	if rs.Len() != other.Len() {
		return false
	}
	for i := 0; i < rs.Len(); i++ {
		if !rs.rules[i].Equal(other.rules[i]) {
			return false
		}
	}
	return true
}

func (rs *RuleSet) add(r *Rule) {
	rs.rules = append(rs.rules, r)
}
