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

package transform

import (
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

// TableRewriter replaces and removes table references of a syntax tree. Nodes carry no parent
// pointers, so every container that can hold a table reference is visited instead: FROM lists,
// parenthesised table lists and both sides of joins.
type TableRewriter struct {
	replacements map[*sqlparser.AliasedTableExpr]sqlparser.TableExpr
	removals     map[*sqlparser.AliasedTableExpr]struct{}
}

// NewTableRewriter creates an empty TableRewriter.
func NewTableRewriter() *TableRewriter {
	return &TableRewriter{
		replacements: make(map[*sqlparser.AliasedTableExpr]sqlparser.TableExpr),
		removals:     make(map[*sqlparser.AliasedTableExpr]struct{}),
	}
}

// Replace schedules the replacement of ref by expr.
func (r *TableRewriter) Replace(ref *sqlparser.AliasedTableExpr, expr sqlparser.TableExpr) {
	r.replacements[ref] = expr
}

// Remove schedules the removal of ref.
func (r *TableRewriter) Remove(ref *sqlparser.AliasedTableExpr) {
	r.removals[ref] = struct{}{}
}

// IsRemoved reports whether the removal of ref is still pending.
func (r *TableRewriter) IsRemoved(ref *sqlparser.AliasedTableExpr) bool {
	_, ok := r.removals[ref]
	return ok
}

// Pending returns the number of replacements and removals not applied yet.
func (r *TableRewriter) Pending() (replacements, removals int) {
	return len(r.replacements), len(r.removals)
}

// Apply runs a single rewrite pass over the tree. Each scheduled entry is consumed once it has been
// applied. A removal whose target is not a direct child of a join or of a FROM list with other items
// stays pending.
func (r *TableRewriter) Apply(node sqlparser.SQLNode) {
	Inspect(node, func(node sqlparser.SQLNode) bool {
		switch n := node.(type) {
		case *sqlparser.Select:
			n.From = r.rewriteList(n.From)
		case *sqlparser.ParenTableExpr:
			n.Exprs = r.rewriteList(n.Exprs)
		case *sqlparser.JoinTableExpr:
			n.LeftExpr = r.rewrite(n.LeftExpr)
			n.RightExpr = r.rewrite(n.RightExpr)
		}
		return true
	})
}

// Rewrite applies passes until every removal is done or a pass stops making progress. Removals
// that could not be applied are returned and dropped from the rewriter.
func (r *TableRewriter) Rewrite(node sqlparser.SQLNode) []*sqlparser.AliasedTableExpr {
	r.Apply(node)

	for len(r.removals) > 0 {
		before := len(r.removals)
		r.Apply(node)
		if len(r.removals) >= before {
			break
		}
	}

	var unresolved []*sqlparser.AliasedTableExpr
	for ref := range r.removals {
		unresolved = append(unresolved, ref)
		delete(r.removals, ref)
	}

	return unresolved
}

func (r *TableRewriter) rewriteList(exprs sqlparser.TableExprs) sqlparser.TableExprs {
	for i := 0; i < len(exprs); i++ {
		if ref, ok := exprs[i].(*sqlparser.AliasedTableExpr); ok && len(exprs) > 1 && r.IsRemoved(ref) {
			delete(r.removals, ref)
			exprs = append(exprs[:i], exprs[i+1:]...)
			i--
			continue
		}

		exprs[i] = r.rewrite(exprs[i])
	}

	return exprs
}

// rewrite returns what takes the place of expr in its container. A join with a side scheduled for
// removal collapses to its other side.
func (r *TableRewriter) rewrite(expr sqlparser.TableExpr) sqlparser.TableExpr {
	switch e := expr.(type) {
	case *sqlparser.AliasedTableExpr:
		if replacement, ok := r.replacements[e]; ok {
			delete(r.replacements, e)
			return replacement
		}
	case *sqlparser.JoinTableExpr:
		if ref, ok := e.LeftExpr.(*sqlparser.AliasedTableExpr); ok && r.IsRemoved(ref) {
			delete(r.removals, ref)
			return r.rewrite(e.RightExpr)
		}

		if ref, ok := e.RightExpr.(*sqlparser.AliasedTableExpr); ok && r.IsRemoved(ref) {
			delete(r.removals, ref)
			return r.rewrite(e.LeftExpr)
		}
	}

	return expr
}
