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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/log"
	"github.com/walteh/regexer/pkg/script"
	"github.com/walteh/regexer/pkg/status"
)

// 📦 NewTransformOperation creates an operation that applies the script to
// every input and writes the results
func NewTransformOperation(opts Options) (*TransformOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &TransformOperation{BaseOperation: base}, nil
}

// 📦 TransformOperation writes one transformed output per input
type TransformOperation struct {
	BaseOperation
}

// 🏃 Execute parses the script first, so a bad script writes nothing, then
// transforms every resolved input
func (op *TransformOperation) Execute(ctx context.Context) error {
	rs, err := op.LoadRules(ctx)
	if err != nil {
		return err
	}

	files, err := op.ResolveInputs(ctx)
	if err != nil {
		return errors.Errorf("resolving inputs: %w", err)
	}
	if err := op.checkDestinations(files); err != nil {
		return err
	}

	console := log.FromContext(ctx)
	console.StartBatch(ctx, log.BatchOperation{
		Script: op.Config.Script,
		Engine: op.Config.Engine,
		Files:  len(files),
	})
	defer console.EndBatch(ctx)

	op.StatusMgr.StartOperation(ctx, len(files))
	defer op.StatusMgr.FinishOperation(ctx)

	return op.Runner.Each(ctx, files, func(ctx context.Context, path string) error {
		defer op.StatusMgr.Advance(ctx)
		if err := op.processFile(ctx, rs, path); err != nil {
			return errors.Errorf("processing %s: %w", path, err)
		}
		return nil
	})
}

// 📄 processFile transforms a single file and writes it if anything changed
func (op *TransformOperation) processFile(ctx context.Context, rs *script.RuleSet, source string) error {
	dest := op.Destination(source)
	info := status.FileInfo{Source: source, Destination: dest}

	fail := func(err error) error {
		info.Status = status.StatusFailed
		info.Error = err
		op.StatusMgr.TrackFile(ctx, info)
		op.logFile(ctx, info)
		return err
	}

	stat, err := os.Stat(source)
	if err != nil {
		return fail(errors.Errorf("reading file info: %w", err))
	}

	f, err := os.Open(source)
	if err != nil {
		return fail(errors.Errorf("opening file: %w", err))
	}
	defer f.Close()

	result, err := op.Replacer.ReplaceText(ctx, f, rs)
	if err != nil {
		return fail(errors.Errorf("replacing text: %w", err))
	}

	fileStatus, err := op.StatusMgr.Classify(ctx, dest, result.ModifiedContent)
	if err != nil {
		return fail(errors.Errorf("checking destination: %w", err))
	}

	if fileStatus != status.StatusUnchanged {
		if err := op.StatusMgr.WriteFileAtomic(ctx, dest, result.ModifiedContent, stat.Mode().Perm()); err != nil {
			return fail(errors.Errorf("writing file: %w", err))
		}
	}

	info.Status = fileStatus
	info.Size = int64(len(result.ModifiedContent))
	info.Checksum = status.Checksum(result.ModifiedContent)
	info.Replacements = result.ReplacementCount
	op.StatusMgr.TrackFile(ctx, info)
	op.logFile(ctx, info)

	return nil
}

// logFile reports a file outcome on the console logger
func (op *BaseOperation) logFile(ctx context.Context, info status.FileInfo) {
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{
		Source:       info.Source,
		Destination:  info.Destination,
		Engine:       op.Config.Engine,
		Status:       statusLabel(info.Status),
		IsNew:        info.Status == status.StatusNew,
		IsModified:   info.Status == status.StatusModified,
		IsPreview:    info.Status == status.StatusPreview,
		IsFailed:     info.Status == status.StatusFailed,
		Replacements: info.Replacements,
	})
}

func statusLabel(s status.FileStatus) string {
	switch s {
	case status.StatusNew:
		return "NEW"
	case status.StatusModified:
		return "UPDATED"
	case status.StatusPreview:
		return "PREVIEW"
	case status.StatusFailed:
		return "FAILED"
	default:
		return "no change"
	}
}
