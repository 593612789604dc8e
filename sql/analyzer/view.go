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

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/parse"
	"github.com/dolthub/go-view-inliner/sql/plan"
)

// View is a parsed view definition together with the facts collected from its body.
type View struct {
	Name       sql.QualifiedName
	Node       *plan.CreateView
	References *References
}

// NewView analyzes the references of the given view definition and resolves the aliases of the
// views it uses.
func NewView(node *plan.CreateView, catalog sql.ViewCatalog) *View {
	refs := analyzeReferences(node, catalog)
	resolveAliases(refs)

	return &View{
		Name:       node.Name,
		Node:       node,
		References: refs,
	}
}

// ParseView parses and analyzes a view definition.
func (a *Analyzer) ParseView(ctx context.Context, definition string) (*View, error) {
	node, err := parse.Parse(ctx, definition)
	if err != nil {
		return nil, err
	}

	v := NewView(node, a.Catalog)
	a.LogView(v)
	return v, nil
}

// String renders the view definition as SQL.
func (v *View) String() string {
	return v.Node.String()
}

// DebugString returns a tree representation of the view and its references.
func (v *View) DebugString() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("View(%s)", v.Name)
	_ = pr.WriteChildren(v.Node.DebugString(), v.References.String())
	return pr.String()
}
