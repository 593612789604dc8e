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
	"context"

	"github.com/dolthub/go-view-inliner/sql/plan"
	"github.com/dolthub/go-view-inliner/sql/transform"
	opentracing "github.com/opentracing/opentracing-go"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

// ErrNoQuery is returned when a view body has no query specification to read its columns from.
var ErrNoQuery = errors.NewKind("view %s has no select query")

// removedView is a referenced view scheduled for removal, kept in case the removal cannot be done.
type removedView struct {
	ref  *TableReference
	view *View
}

// Inline replaces every view referenced by the given view, recursively, with a derived table
// holding the body of that view. The tree of the view is modified in place.
func (a *Analyzer) Inline(ctx context.Context, view *View) *Report {
	span, ctx := opentracing.StartSpanFromContext(ctx, "resolve_views")
	defer span.Finish()

	report := NewReport()
	report.KnownViews = a.knownViews(ctx, view)

	a.Log("inlining view %s with %d known views", view.Name, len(report.KnownViews))
	a.inline(ctx, view, map[string]struct{}{view.Name.Key(): {}}, report)

	span.SetTag("columns_stripped", report.ColumnsStripped)
	span.SetTag("joins_stripped", report.JoinsStripped)
	span.SetTag("errors", len(report.Errors))

	return report
}

func (a *Analyzer) inline(ctx context.Context, view *View, visiting map[string]struct{}, report *Report) {
	a.PushDebugContext(view.Name.String())
	defer a.PopDebugContext()

	refs := view.References
	rewriter := transform.NewTableRewriter()
	removed := make(map[*sqlparser.AliasedTableExpr]*removedView)

	if len(refs.Views) == 0 {
		a.stripUnusedTables(view, rewriter, report)
		a.rewrite(ctx, view, rewriter, removed, visiting, report)
		return
	}

	if unaliased := refs.unaliasedViews(); len(unaliased) > 0 {
		report.errorf(
			"Use of tables without using an alias in %s, aborting:\n%s",
			view.Name, listItems(referenceNames(unaliased)),
		)
		return
	}

	if a.Options.StripUnusedJoins {
		// Unqualified columns may read from any source, which weakens join stripping.
		if cols := refs.singlePartColumns(); len(cols) > 0 {
			names := make([]string, len(cols))
			for i, col := range cols {
				names[i] = col.Name.String()
			}
			report.warnf("Use of single part identifiers in %s:\n%s", view.Name, listItems(names))
		}
	}

	for _, ref := range refs.Views {
		if _, ok := visiting[ref.Name.Key()]; ok {
			report.errorf("Circular reference to %s %s in %s, skipping.", ref.Name, ref.Alias, view.Name)
			continue
		}

		inner, err := a.loadView(ctx, ref)
		if err != nil {
			a.Log("unable to load view %s: %s", ref.Name, err)
			report.errorf("Could not inline %s %s, aborting.", ref.Name, ref.Alias)
			return
		}

		if a.Options.StripUnusedColumns && !refs.starReads(ref.Alias) {
			a.pruneColumns(view, ref, inner, report)

			switch len(inner.References.Query.SelectExprs) {
			case 0:
				report.warnf("No columns are selected from %s %s in %s", ref.Name, ref.Alias, view.Name)
				addPlaceholder(inner)

				if a.Options.StripUnusedJoins && ref.Removable {
					a.removeView(ref, inner, rewriter, removed, report)
					continue
				}
			case 1:
				if !a.Options.StripUnusedJoins {
					report.warnf(
						"Only 1 column is selected from %s %s in %s, enable StripUnusedJoins to remove these.",
						ref.Name, ref.Alias, view.Name,
					)
				} else if ref.Removable {
					a.removeView(ref, inner, rewriter, removed, report)
					continue
				}
			}
		}

		if derived, ok := a.inlineReference(ctx, ref, inner, visiting, report); ok {
			rewriter.Replace(ref.Node, derived)
		}
	}

	a.stripUnusedTables(view, rewriter, report)
	a.rewrite(ctx, view, rewriter, removed, visiting, report)
}

// loadView fetches and parses the definition of a referenced view.
func (a *Analyzer) loadView(ctx context.Context, ref *TableReference) (*View, error) {
	definition, err := a.Catalog.ViewDefinition(ctx, ref.Name)
	if err != nil {
		return nil, err
	}

	v, err := a.ParseView(ctx, definition)
	if err != nil {
		return nil, err
	}

	if v.References.Query == nil {
		return nil, ErrNoQuery.New(ref.Name)
	}

	return v, nil
}

func (a *Analyzer) removeView(
	ref *TableReference,
	inner *View,
	rewriter *transform.TableRewriter,
	removed map[*sqlparser.AliasedTableExpr]*removedView,
	report *Report,
) {
	a.Log("removing unused view %s", ref)
	rewriter.Remove(ref.Node)
	removed[ref.Node] = &removedView{ref: ref, view: inner}
	report.JoinsStripped++
}

// inlineReference flattens the inner view and wraps its body in a derived table. Nothing is
// returned when flattening raised errors.
func (a *Analyzer) inlineReference(
	ctx context.Context,
	ref *TableReference,
	inner *View,
	visiting map[string]struct{},
	report *Report,
) (*sqlparser.AliasedTableExpr, bool) {
	errorCount := len(report.Errors)

	visiting[ref.Name.Key()] = struct{}{}
	a.inline(ctx, inner, visiting, report)
	delete(visiting, ref.Name.Key())

	if len(report.Errors) > errorCount {
		a.Log("keeping view %s, inlining its references failed", ref)
		return nil, false
	}

	return derivedTable(inner, ref.Alias), true
}

// rewrite applies the scheduled replacements and removals to the tree of the view. Views that
// could not be removed are inlined instead.
func (a *Analyzer) rewrite(
	ctx context.Context,
	view *View,
	rewriter *transform.TableRewriter,
	removed map[*sqlparser.AliasedTableExpr]*removedView,
	visiting map[string]struct{},
	report *Report,
) {
	unresolved := rewriter.Rewrite(view.Node.Definition)
	if len(unresolved) == 0 {
		return
	}

	for _, node := range unresolved {
		report.JoinsStripped--

		r, ok := removed[node]
		if !ok {
			a.Log("table %s could not be removed", sqlparser.String(node))
			continue
		}

		a.Log("view %s could not be removed, inlining it", r.ref)
		if derived, ok := a.inlineReference(ctx, r.ref, r.view, visiting, report); ok {
			rewriter.Replace(node, derived)
		}
	}

	rewriter.Apply(view.Node.Definition)
}

// derivedTable wraps the body of the view in a derived table with the given alias. Output columns
// named by the column list of the view are aliased accordingly.
func derivedTable(v *View, alias string) *sqlparser.AliasedTableExpr {
	if query := plan.FirstSelect(v.Node.Definition); query != nil {
		for i, name := range v.Node.Columns {
			if i >= len(query.SelectExprs) {
				break
			}

			if expr, ok := query.SelectExprs[i].(*sqlparser.AliasedExpr); ok {
				expr.As = sqlparser.NewColIdent(name)
			}
		}
	}

	return &sqlparser.AliasedTableExpr{
		Expr: &sqlparser.Subquery{Select: v.Node.Definition},
		As:   sqlparser.NewTableIdent(alias),
	}
}
