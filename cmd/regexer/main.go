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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/cmd/regexer/commands"
	"github.com/walteh/regexer/cmd/regexer/opts"
	"github.com/walteh/regexer/pkg/log"
	"github.com/walteh/regexer/pkg/script"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootOpts := &opts.RootOpts{}
	rootCmd := newRootCmd(rootOpts, stdout, stderr)

	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewDiffCmd(rootOpts),
		newVersionCmd(),
	)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(ctx, rootOpts, stderr, err)
		return 1
	}
	return 0
}

// reportError prints err through the user logger, naming the script line for parse failures
func reportError(ctx context.Context, rootOpts *opts.RootOpts, stderr io.Writer, err error) {
	userLogger := rootOpts.UserLogger
	if userLogger == nil {
		userLogger = log.NewUserLogger(ctx, stderr)
	}

	var scriptErr *script.ScriptError
	if errors.As(err, &scriptErr) {
		name := scriptErr.Name
		if name == "" {
			name = "replacements"
		}
		userLogger.LogValidation(false, fmt.Sprintf("failure on line %d of %s", scriptErr.Line, name), scriptErr.Err)
		return
	}

	userLogger.LogValidation(false, "Command failed", err)
}
