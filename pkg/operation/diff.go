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
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/log"
	"github.com/walteh/regexer/pkg/script"
	"github.com/walteh/regexer/pkg/status"
)

// 👀 NewDiffOperation creates a dry run that renders what a transform would
// change without writing anything
func NewDiffOperation(opts Options) (*DiffOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &DiffOperation{
		BaseOperation: base,
		diffs:         make(map[string]string),
	}, nil
}

// 👀 DiffOperation previews a transform
type DiffOperation struct {
	BaseOperation

	mu    sync.Mutex
	diffs map[string]string
}

// 🏃 Execute renders one diff per input to the console logger
func (op *DiffOperation) Execute(ctx context.Context) error {
	rs, err := op.LoadRules(ctx)
	if err != nil {
		return err
	}

	files, err := op.ResolveInputs(ctx)
	if err != nil {
		return errors.Errorf("resolving inputs: %w", err)
	}

	console := log.FromContext(ctx)
	console.StartBatch(ctx, log.BatchOperation{
		Script: op.Config.Script,
		Engine: op.Config.Engine,
		Files:  len(files),
		DryRun: true,
	})
	defer console.EndBatch(ctx)

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	return op.Runner.Each(ctx, files, func(ctx context.Context, path string) error {
		defer op.StatusMgr.Advance(ctx)
		if err := op.previewFile(ctx, rs, path); err != nil {
			return errors.Errorf("processing %s: %w", path, err)
		}
		return nil
	})
}

// Diffs returns the rendered diff per source path. Sources without changes
// map to an empty string.
func (op *DiffOperation) Diffs() map[string]string {
	op.mu.Lock()
	defer op.mu.Unlock()

	out := make(map[string]string, len(op.diffs))
	for k, v := range op.diffs {
		out[k] = v
	}
	return out
}

func (op *DiffOperation) previewFile(ctx context.Context, rs *script.RuleSet, source string) error {
	f, err := os.Open(source)
	if err != nil {
		return errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	result, err := op.Replacer.ReplaceText(ctx, f, rs)
	if err != nil {
		return errors.Errorf("replacing text: %w", err)
	}

	rendered := ""
	if result.WasModified {
		rendered = RenderDiff(source, op.Destination(source), string(result.OriginalContent), string(result.ModifiedContent))
	}

	op.mu.Lock()
	op.diffs[source] = rendered
	op.mu.Unlock()

	info := status.FileInfo{
		Source:       source,
		Destination:  op.Destination(source),
		Status:       status.StatusPreview,
		Size:         int64(len(result.ModifiedContent)),
		Checksum:     status.Checksum(result.ModifiedContent),
		Replacements: result.ReplacementCount,
	}
	op.StatusMgr.TrackFile(ctx, info)
	op.logFile(ctx, info)

	if rendered != "" {
		log.FromContext(ctx).Raw(rendered)
	}

	return nil
}

// 🎨 RenderDiff renders a line level diff between before and after with
// deletions in red and insertions in green
func RenderDiff(from, to, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", color.New(color.Bold).Sprintf("--- %s", from))
	fmt.Fprintf(&sb, "%s\n", color.New(color.Bold).Sprintf("+++ %s", to))

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(del.Sprintf("-%s", line))
			case diffmatchpatch.DiffInsert:
				sb.WriteString(ins.Sprintf("+%s", line))
			default:
				sb.WriteString(" " + line)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// splitLines splits s into lines without their terminators
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
