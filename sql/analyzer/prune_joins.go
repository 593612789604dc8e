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

import "github.com/dolthub/go-view-inliner/sql/transform"

// stripUnusedTables schedules the removal of the tables that at most one column reference reads
// from, typically the column they are joined on. Usages are counted with repetition, so a table
// joined and filtered on the same column is kept.
func (a *Analyzer) stripUnusedTables(view *View, rewriter *transform.TableRewriter, report *Report) {
	if !a.Options.StripUnusedJoins {
		return
	}

	refs := view.References
	for _, t := range refs.Tables {
		if !t.Removable || rewriter.IsRemoved(t.Node) {
			continue
		}

		reference := t.Reference()
		if refs.starReads(reference) {
			continue
		}

		if len(refs.usages(reference)) <= 1 {
			a.Log("removing unused table %s", t)
			rewriter.Remove(t.Node)
			report.JoinsStripped++
		}
	}
}
