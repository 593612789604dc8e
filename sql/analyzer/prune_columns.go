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
	"strings"

	"github.com/dolthub/go-view-inliner/sql/plan"
	"github.com/dolthub/go-view-inliner/sql/transform"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

const placeholderColumn = "unused"

type usedColumns map[string]struct{}

func (uc usedColumns) add(col string) {
	uc[strings.ToLower(col)] = struct{}{}
}

func (uc usedColumns) has(col string) bool {
	_, ok := uc[strings.ToLower(col)]
	return ok
}

// pruneColumns removes the select items of the inner view that the outer view never reads through
// ref. A column counts as read when a reference qualified with the alias of ref, or an unqualified
// one, uses its name. Set operations lose the same positions in every branch.
func (a *Analyzer) pruneColumns(outer *View, ref *TableReference, inner *View, report *Report) {
	used := make(usedColumns)
	for _, col := range outer.References.usages(ref.Alias) {
		used.add(col.Name.String())
	}

	selects := plan.Selects(inner.Node.Definition)
	if len(selects) == 0 {
		return
	}

	first := selects[0]
	for _, s := range selects[1:] {
		if len(s.SelectExprs) != len(first.SelectExprs) {
			a.Log("not pruning columns of %s: branches have different column counts", inner.Name)
			return
		}
	}

	columns := inner.Node.Columns
	if len(columns) > 0 && len(columns) != len(first.SelectExprs) {
		a.Log("not pruning columns of %s: column list does not match the select list", inner.Name)
		return
	}

	for i := len(first.SelectExprs) - 1; i >= 0; i-- {
		name, ok := outputName(columns, first, i)
		if !ok || used.has(name) {
			continue
		}

		a.Log("removing column %s of %s %s", name, inner.Name, ref.Alias)
		for _, s := range selects {
			removed := s.SelectExprs[i]
			s.SelectExprs = append(s.SelectExprs[:i], s.SelectExprs[i+1:]...)

			var cols []*sqlparser.ColName
			transform.InspectColumns(removed, func(col *sqlparser.ColName) {
				cols = append(cols, col)
			})
			inner.References.removeColumns(cols)
			report.ColumnsStripped++
		}

		if len(columns) > 0 {
			columns = append(columns[:i], columns[i+1:]...)
		}
	}

	inner.Node.Columns = columns
}

// outputName returns the name of the i-th output column: the name from the column list of the
// view, the alias of the item, or the name of the column it selects. Other items have no name.
func outputName(columns []string, query *sqlparser.Select, i int) (string, bool) {
	if len(columns) > 0 {
		return columns[i], true
	}

	expr, ok := query.SelectExprs[i].(*sqlparser.AliasedExpr)
	if !ok {
		return "", false
	}

	if !expr.As.IsEmpty() {
		return expr.As.String(), true
	}

	if col, ok := expr.Expr.(*sqlparser.ColName); ok {
		return col.Name.String(), true
	}

	return "", false
}

// addPlaceholder adds a constant column to every branch of the view so its body stays a valid
// projection.
func addPlaceholder(v *View) {
	for _, s := range plan.Selects(v.Node.Definition) {
		s.SelectExprs = append(s.SelectExprs, &sqlparser.AliasedExpr{
			Expr: sqlparser.NewIntVal([]byte("0")),
			As:   sqlparser.NewColIdent(placeholderColumn),
		})
	}
}
