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

package plan

import (
	"strings"

	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

const dualTable = "dual"

// String renders a node back to SQL. Unlike sqlparser.String, a SELECT without a FROM clause is
// rendered without the dual table the parser puts in its place.
func String(node sqlparser.SQLNode) string {
	if node == nil {
		return "<nil>"
	}

	buf := sqlparser.NewTrackedBuffer(formatNode)
	buf.Myprintf("%v", node)
	return buf.String()
}

func formatNode(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
	s, ok := node.(*sqlparser.Select)
	if !ok || !IsDual(s.From) {
		node.Format(buf)
		return
	}

	buf.Myprintf("select %v%s%s%s%v%v%v%v%v%v%s",
		s.Comments, s.Cache, s.Distinct, s.Hints, s.SelectExprs,
		s.Where, s.GroupBy, s.Having, s.OrderBy, s.Limit, s.Lock)
}

// IsDual reports whether a FROM clause only holds the dual table.
func IsDual(from sqlparser.TableExprs) bool {
	if len(from) != 1 {
		return false
	}

	t, ok := from[0].(*sqlparser.AliasedTableExpr)
	return ok && IsDualTable(t)
}

// IsDualTable reports whether t is a bare reference to the dual table.
func IsDualTable(t *sqlparser.AliasedTableExpr) bool {
	if !t.As.IsEmpty() || t.Hints != nil || len(t.Partitions) > 0 {
		return false
	}

	name, ok := t.Expr.(sqlparser.TableName)
	return ok && name.Qualifier.IsEmpty() && strings.EqualFold(name.Name.String(), dualTable)
}
