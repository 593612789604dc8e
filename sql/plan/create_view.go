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
	"fmt"
	"strings"

	"github.com/dolthub/go-view-inliner/sql"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

// CreateViewKind is the verb a view definition was declared with.
type CreateViewKind byte

const (
	// Create is a plain CREATE VIEW.
	Create CreateViewKind = iota
	// CreateOrAlter is CREATE OR ALTER VIEW.
	CreateOrAlter
	// CreateOrReplace is CREATE OR REPLACE VIEW.
	CreateOrReplace
)

func (k CreateViewKind) String() string {
	switch k {
	case CreateOrAlter:
		return "CREATE OR ALTER VIEW"
	case CreateOrReplace:
		return "CREATE OR REPLACE VIEW"
	default:
		return "CREATE VIEW"
	}
}

// CreateView is a parsed view definition. The header is kept as plain values and the body as a
// mutable vitess syntax tree.
type CreateView struct {
	Name       sql.QualifiedName
	Kind       CreateViewKind
	Columns    []string
	Attributes []string
	Definition sqlparser.SelectStatement
	// CheckOption is set when the body ended with WITH CHECK OPTION.
	CheckOption bool
}

// NewCreateView creates a CreateView node.
func NewCreateView(
	name sql.QualifiedName,
	kind CreateViewKind,
	columns []string,
	definition sqlparser.SelectStatement,
) *CreateView {
	return &CreateView{
		Name:       name,
		Kind:       kind,
		Columns:    columns,
		Definition: definition,
	}
}

// Query returns the first query specification of the body, the one whose select list names the
// output columns of the view.
func (create *CreateView) Query() *sqlparser.Select {
	return FirstSelect(create.Definition)
}

// String renders the view definition back to SQL.
func (create *CreateView) String() string {
	var sb strings.Builder

	sb.WriteString(create.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(create.Name.String())

	if len(create.Columns) > 0 {
		columns := make([]string, len(create.Columns))
		for i, c := range create.Columns {
			columns[i] = sql.EncodeIdentifier(c)
		}
		sb.WriteString("(" + strings.Join(columns, ", ") + ")")
	}

	if len(create.Attributes) > 0 {
		sb.WriteString(" WITH " + strings.Join(create.Attributes, ", "))
	}

	sb.WriteString(" AS ")
	sb.WriteString(String(create.Definition))

	if create.CheckOption {
		sb.WriteString(" WITH CHECK OPTION")
	}

	return sb.String()
}

// DebugString returns a tree representation of the view for debug logs.
func (create *CreateView) DebugString() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("CreateView(%s)", create.Name)
	_ = pr.WriteChildren(
		fmt.Sprintf("Columns (%s)", strings.Join(create.Columns, ", ")),
		String(create.Definition),
	)
	return pr.String()
}
