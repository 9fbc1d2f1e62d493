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

// Package matcher provides the pattern compilers used to turn the find side of a
// rule into something that can replace matches in text.
//
// Two engines are registered by default:
//
//   - "re2": Go's regexp package. Linear time, no backreferences or lookaround.
//   - "regexp2": github.com/dlclark/regexp2. Backtracking, supports lookaround.
//
// Both understand the same replacement template references: $1, ${1}, ${name}
// and $$ for a literal dollar sign.
package matcher

import (
	"sort"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// 🔍 Matcher is a compiled pattern. Implementations must be safe for concurrent use.
type Matcher interface {
	// ReplaceAll replaces every non-overlapping match in subject with template,
	// expanding capture references per match.
	ReplaceAll(subject, template string) string

	// Count returns the number of non-overlapping matches in subject.
	Count(subject string) int

	// String returns the source pattern.
	String() string
}

// 🏭 Engine compiles patterns into matchers
type Engine interface {
	// Name is the key the engine is registered under
	Name() string

	// Compile compiles pattern, returning the engine's diagnostic on failure
	Compile(pattern string) (Matcher, error)
}

var (
	registryMu sync.RWMutex
	// 🗺️ engines maps engine names to engines
	engines = map[string]Engine{}
)

// 📝 Register registers an engine under its name, replacing any previous one
func Register(e Engine) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engines[strings.ToLower(e.Name())] = e
}

// 🎯 Lookup returns the engine registered under name. An empty name selects the default.
func Lookup(name string) (Engine, error) {
	if name == "" {
		return Default(), nil
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Errorf("unknown pattern engine %q (available: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return e, nil
}

// Names returns the registered engine names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the engine used when none is configured.
func Default() Engine {
	return RE2
}
