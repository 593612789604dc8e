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

package analyzer

import (
	"fmt"
	"sort"
	"strings"
)

// Report collects what happened while inlining a view.
type Report struct {
	// Errors prevented the inlining of some views.
	Errors []string
	// Warnings point at parts of the views that make the result less reliable or less lean.
	Warnings []string
	// ColumnsStripped counts the select items removed from inlined views.
	ColumnsStripped int
	// JoinsStripped counts the removed views and tables. Removals that could not be applied to
	// the tree are not counted.
	JoinsStripped int
	// KnownViews holds the inlined view and every view it references, directly or not, keyed by
	// canonical lower-case name.
	KnownViews map[string]*View
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{KnownViews: make(map[string]*View)}
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// KnownViewNames returns the canonical names of the known views, sorted.
func (r *Report) KnownViewNames() []string {
	names := make([]string, 0, len(r.KnownViews))
	for _, v := range r.KnownViews {
		names = append(names, v.Name.String())
	}
	sort.Strings(names)
	return names
}

// listItems formats the names as a list, one " - name" line each.
func listItems(names []string) string {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = " - " + name
	}
	return strings.Join(lines, "\n")
}

func referenceNames(refs []*TableReference) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name.String()
	}
	return names
}
