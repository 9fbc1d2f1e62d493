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

	"github.com/walteh/regexer/pkg/log"
	"github.com/walteh/regexer/pkg/script"
)

// 🔍 NewCheckOperation creates an operation that only parses the script
func NewCheckOperation(opts Options) (*CheckOperation, error) {
	base, err := newBaseOperation(opts, false)
	if err != nil {
		return nil, err
	}
	return &CheckOperation{BaseOperation: base}, nil
}

// 🔍 CheckOperation validates a script and lists its rules
type CheckOperation struct {
	BaseOperation

	rules *script.RuleSet
}

// 🏃 Execute parses the script and prints each rule with its line
func (op *CheckOperation) Execute(ctx context.Context) error {
	rs, err := op.LoadRules(ctx)
	if err != nil {
		return err
	}
	op.rules = rs

	console := log.FromContext(ctx)
	for _, rule := range rs.Rules() {
		console.Infof("line %d: %q -> %q", rule.Line(), rule.Pattern(), rule.Template())
	}
	console.Successf("%s: %d rules (%s)", rs.Name(), rs.Len(), op.Config.Engine)

	return nil
}

// Rules returns the parsed rules after a successful Execute
func (op *CheckOperation) Rules() *script.RuleSet {
	return op.rules
}
