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

package inliner

import (
	"fmt"
	"strings"
	"time"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/analyzer"
)

// AppName is the name the generated header credits.
const AppName = "view-inliner"

const timestampLayout = "2006-01-02 15:04:05"

// Result holds the converted view and the report wrapped around it.
type Result struct {
	GeneratedAt time.Time
	Elapsed     time.Duration
	// KnownViews are the inlined view and every view it references, keyed by canonical lower-case
	// name.
	KnownViews map[string]*analyzer.View
	// ConvertedSQL is the inlined view definition alone.
	ConvertedSQL string
	// SQL is the inlined view definition preceded by a comment holding the original definition and
	// the report.
	SQL string
}

func newResult(
	generatedAt time.Time,
	elapsed time.Duration,
	original, converted string,
	report *analyzer.Report,
) *Result {
	var sb strings.Builder

	sb.WriteString("/*\n")
	fmt.Fprintf(&sb, "-- Generated on %s by %s in %s\n", generatedAt.Format(timestampLayout), AppName, elapsed)
	sb.WriteString(sql.BeginOriginal + "\n")
	sb.WriteString(original + "\n")
	sb.WriteString(sql.EndOriginal + "\n\n")

	names := report.KnownViewNames()
	fmt.Fprintf(&sb, "-- Referenced views (%d):\n%s\n\n", len(names), strings.Join(names, "\n"))
	fmt.Fprintf(&sb, "-- Removed: %d select columns and %d joins\n\n", report.ColumnsStripped, report.JoinsStripped)
	fmt.Fprintf(&sb, "-- Warnings (%d):\n%s\n\n", len(report.Warnings), strings.Join(report.Warnings, "\n"))
	fmt.Fprintf(&sb, "-- Errors (%d):\n%s\n\n", len(report.Errors), strings.Join(report.Errors, "\n"))
	sb.WriteString("*/\n")
	sb.WriteString(converted + "\n\n")

	return &Result{
		GeneratedAt:  generatedAt,
		Elapsed:      elapsed,
		KnownViews:   report.KnownViews,
		ConvertedSQL: converted,
		SQL:          sb.String(),
	}
}
