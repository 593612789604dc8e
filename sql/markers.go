// Copyright 2024 Dolthub, Inc.
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

package sql

import "strings"

// Markers wrapping the untouched definition of a view in the report header written by the inliner.
const (
	BeginOriginal = "-- BEGIN ORIGINAL SQL VIEW --"
	EndOriginal   = "-- END ORIGINAL SQL VIEW --"
)

// StripOriginal returns the original definition embedded between BeginOriginal and EndOriginal, trimmed
// of surrounding whitespace. Definitions without both markers are returned as given.
func StripOriginal(definition string) string {
	start := strings.Index(definition, BeginOriginal)
	if start < 0 {
		return definition
	}
	start += len(BeginOriginal)

	end := strings.Index(definition[start:], EndOriginal)
	if end < 0 {
		return definition
	}

	return strings.TrimSpace(definition[start : start+end])
}
