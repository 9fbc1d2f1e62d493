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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations and fans work out over files
type OperationRunner struct {
	logger  *zerolog.Logger
	async   bool
	workers int
}

// 🏗️ NewRunner creates a new runner. workers bounds concurrency when async
// is set; values below one mean one worker.
func NewRunner(logger *zerolog.Logger, async bool, workers int) *OperationRunner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if workers < 1 {
		workers = 1
	}
	return &OperationRunner{
		logger:  logger,
		async:   async,
		workers: workers,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}

// 🔁 Each calls fn for every path, sequentially or on a bounded worker pool.
// The first error stops paths that have not started yet.
func (r *OperationRunner) Each(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	if r.async {
		return r.eachAsync(ctx, paths, fn)
	}
	return r.eachSync(ctx, paths, fn)
}

// 🔄 eachSync runs fn over paths one at a time
func (r *OperationRunner) eachSync(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := fn(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ eachAsync runs fn over paths with at most r.workers in flight
func (r *OperationRunner) eachAsync(ctx context.Context, paths []string, fn func(ctx context.Context, path string) error) error {
	r.logger.Debug().Int("workers", r.workers).Int("files", len(paths)).Msg("processing files concurrently")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				r.logger.Debug().Str("path", path).Msg("skipping file after cancellation")
				return nil
			}
			return fn(gctx, path)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	return nil
}
