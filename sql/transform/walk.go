// Copyright 2020-2021 Dolthub, Inc.
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

package transform

import (
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

// Inspect performs a pre-order traversal of the syntax tree, descending into subqueries. If f returns
// false the children of the node are skipped.
func Inspect(node sqlparser.SQLNode, f func(sqlparser.SQLNode) bool) {
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		return f(node), nil
	}, node)
}

// InspectTables calls f for every table reference of the tree, including those of derived tables and
// scalar subqueries. Removable is set when the reference could be dropped without leaving its
// container empty: it is one side of a join, or one of several items of a FROM list.
func InspectTables(node sqlparser.SQLNode, f func(ref *sqlparser.AliasedTableExpr, removable bool)) {
	visitList := func(exprs sqlparser.TableExprs) {
		for _, expr := range exprs {
			if ref, ok := expr.(*sqlparser.AliasedTableExpr); ok {
				f(ref, len(exprs) > 1)
			}
		}
	}

	Inspect(node, func(node sqlparser.SQLNode) bool {
		switch n := node.(type) {
		case *sqlparser.Select:
			visitList(n.From)
		case *sqlparser.ParenTableExpr:
			visitList(n.Exprs)
		case *sqlparser.JoinTableExpr:
			for _, side := range []sqlparser.TableExpr{n.LeftExpr, n.RightExpr} {
				if ref, ok := side.(*sqlparser.AliasedTableExpr); ok {
					f(ref, true)
				}
			}
		}
		return true
	})
}

// InspectColumns calls f for every column reference of the tree, including those of subqueries.
func InspectColumns(node sqlparser.SQLNode, f func(*sqlparser.ColName)) {
	Inspect(node, func(node sqlparser.SQLNode) bool {
		if col, ok := node.(*sqlparser.ColName); ok {
			f(col)
		}
		return true
	})
}
