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
	"strings"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/plan"
	"github.com/dolthub/go-view-inliner/sql/transform"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

// TableReference is a named table or view used as a source of a query.
type TableReference struct {
	Node *sqlparser.AliasedTableExpr
	Name sql.QualifiedName
	// Alias is the explicit alias. Views without one get their base name assigned by resolveAliases
	// when it is free.
	Alias string
	// Removable is set when the reference can be dropped without leaving its join or FROM list
	// empty.
	Removable bool
}

// Reference returns the name columns use to refer to the source: the alias, or the base name when
// there is none.
func (t *TableReference) Reference() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name.Name
}

func (t *TableReference) String() string {
	if t.Alias == "" {
		return t.Name.String()
	}
	return t.Name.String() + " " + t.Alias
}

// References are the facts collected from the body of a view.
type References struct {
	// Query is the first query specification; its select list names the output columns.
	Query *sqlparser.Select
	// Columns are all column references, with database.table.column references cut down to
	// table.column.
	Columns []*sqlparser.ColName
	// Stars are the * and alias.* select items outside of EXISTS subqueries.
	Stars  []*sqlparser.StarExpr
	Tables []*TableReference
	Views  []*TableReference
}

func analyzeReferences(node *plan.CreateView, catalog sql.ViewCatalog) *References {
	refs := &References{Query: node.Query()}
	body := node.Definition

	transform.InspectTables(body, func(ref *sqlparser.AliasedTableExpr, removable bool) {
		name, ok := ref.Expr.(sqlparser.TableName)
		if !ok || plan.IsDualTable(ref) {
			return
		}

		t := &TableReference{
			Node:      ref,
			Name:      sql.NewQualifiedName(name.Qualifier.String(), name.Name.String()),
			Alias:     ref.As.String(),
			Removable: removable,
		}

		if catalog.IsView(t.Name) {
			refs.Views = append(refs.Views, t)
		} else {
			refs.Tables = append(refs.Tables, t)
		}
	})

	ignored := make(map[*sqlparser.ColName]struct{})
	transform.Inspect(body, func(node sqlparser.SQLNode) bool {
		fn, ok := node.(*sqlparser.FuncExpr)
		if !ok {
			return true
		}

		indexes, ok := ignoredParameters(fn.Name.String())
		if !ok {
			return true
		}

		for _, idx := range indexes {
			if idx >= len(fn.Exprs) {
				continue
			}

			if expr, ok := fn.Exprs[idx].(*sqlparser.AliasedExpr); ok {
				if col, ok := expr.Expr.(*sqlparser.ColName); ok {
					ignored[col] = struct{}{}
				}
			}
		}
		return true
	})

	transform.InspectColumns(body, func(col *sqlparser.ColName) {
		if _, ok := ignored[col]; ok {
			return
		}

		if !col.Qualifier.Qualifier.IsEmpty() {
			col.Qualifier.Qualifier = sqlparser.TableIdent{}
		}
		refs.Columns = append(refs.Columns, col)
	})

	transform.Inspect(body, func(node sqlparser.SQLNode) bool {
		switch n := node.(type) {
		case *sqlparser.ExistsExpr:
			return false
		case *sqlparser.StarExpr:
			refs.Stars = append(refs.Stars, n)
		}
		return true
	})

	return refs
}

// usages returns the column references that may read from the source known as reference: the ones
// qualified with it and every unqualified one.
func (r *References) usages(reference string) []*sqlparser.ColName {
	var cols []*sqlparser.ColName
	for _, col := range r.Columns {
		if col.Qualifier.IsEmpty() || strings.EqualFold(col.Qualifier.Name.String(), reference) {
			cols = append(cols, col)
		}
	}
	return cols
}

// singlePartColumns returns the column references without a table qualifier.
func (r *References) singlePartColumns() []*sqlparser.ColName {
	var cols []*sqlparser.ColName
	for _, col := range r.Columns {
		if col.Qualifier.IsEmpty() {
			cols = append(cols, col)
		}
	}
	return cols
}

// unaliasedViews returns the view references without an alias.
func (r *References) unaliasedViews() []*TableReference {
	var views []*TableReference
	for _, v := range r.Views {
		if v.Alias == "" {
			views = append(views, v)
		}
	}
	return views
}

// starReads reports whether a * select item may read every column of the source known as reference.
func (r *References) starReads(reference string) bool {
	for _, star := range r.Stars {
		if star.TableName.IsEmpty() || strings.EqualFold(star.TableName.Name.String(), reference) {
			return true
		}
	}
	return false
}

// removeColumns de-registers the given column references.
func (r *References) removeColumns(cols []*sqlparser.ColName) {
	if len(cols) == 0 {
		return
	}

	removed := make(map[*sqlparser.ColName]struct{}, len(cols))
	for _, col := range cols {
		removed[col] = struct{}{}
	}

	kept := r.Columns[:0]
	for _, col := range r.Columns {
		if _, ok := removed[col]; !ok {
			kept = append(kept, col)
		}
	}
	r.Columns = kept
}

func (r *References) String() string {
	tableNames := func(refs []*TableReference) string {
		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = ref.String()
		}
		return strings.Join(names, ", ")
	}

	columns := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		columns[i] = sqlparser.String(col)
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("References")
	_ = pr.WriteChildren(
		fmt.Sprintf("Tables (%s)", tableNames(r.Tables)),
		fmt.Sprintf("Views (%s)", tableNames(r.Views)),
		fmt.Sprintf("Columns (%s)", strings.Join(columns, ", ")),
	)
	return pr.String()
}
