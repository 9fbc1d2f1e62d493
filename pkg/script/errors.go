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

	"gitlab.com/tozd/go/errors"
)

// ErrLineFormat is matched by errors.Is for any *LineFormatError.
var ErrLineFormat = errors.Base(`expected "find" -> "replace"`)

// 🧩 PatternError reports a find pattern that failed to compile
type PatternError struct {
	Pattern string // Find text as written in the script
	Engine  string // Engine that rejected it
	Err     error  // Engine diagnostic
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compiling pattern %q with %s: %v", e.Pattern, e.Engine, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// 📏 LineFormatError reports a line that is neither blank, a comment, nor a rule
type LineFormatError struct {
	Line   string // Offending line content
	Reason string // Optional detail
}

func (e *LineFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("could not parse line %q: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("could not parse line %q: %v", e.Line, ErrLineFormat)
}

func (e *LineFormatError) Is(target error) bool {
	return target == ErrLineFormat
}

// 📍 ScriptError locates a parse failure within a script
type ScriptError struct {
	Name string // Script identity, usually its path
	Line int    // 1-based line number
	Err  error  // *PatternError or *LineFormatError
}

func (e *ScriptError) Error() string {
	name := e.Name
	if name == "" {
		name = "replacements"
	}
	return fmt.Sprintf("failure on line %d of %s: %v", e.Line, name, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
