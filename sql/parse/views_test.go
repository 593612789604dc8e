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

package parse

import (
	"context"
	"testing"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/plan"
	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

func TestParseCreateView(t *testing.T) {
	var fixtures = []struct {
		query       string
		name        sql.QualifiedName
		kind        plan.CreateViewKind
		columns     []string
		attributes  []string
		checkOption bool
		body        string
	}{
		{
			query: "CREATE VIEW dbo.VPeople AS SELECT Id, FirstName FROM People;",
			name:  sql.NewQualifiedName("dbo", "VPeople"),
			kind:  plan.Create,
			body:  "select Id, FirstName from People",
		},
		{
			query:      "create or alter view [dbo].[V Test] (A, [B]) with schemabinding, view_metadata as select 1 as A, 2 as B",
			name:       sql.NewQualifiedName("dbo", "V Test"),
			kind:       plan.CreateOrAlter,
			columns:    []string{"A", "B"},
			attributes: []string{"SCHEMABINDING", "VIEW_METADATA"},
			body:       "select 1 as A, 2 as B",
		},
		{
			query:       "/* generated */\n-- header\nCREATE OR REPLACE VIEW v AS SELECT a FROM t WITH CHECK OPTION",
			name:        sql.NewQualifiedName("", "v"),
			kind:        plan.CreateOrReplace,
			checkOption: true,
			body:        "select a from t",
		},
		{
			query:   "CREATE VIEW shop.sales.`VOrders`(Id) AS\n\tSELECT o.Id FROM Orders o\n",
			name:    sql.NewQualifiedName("sales", "VOrders"),
			kind:    plan.Create,
			columns: []string{"Id"},
			body:    "select o.Id from Orders as o",
		},
		{
			query: "CREATE VIEW dbo.VAll AS SELECT Id FROM A UNION ALL SELECT Id FROM B",
			name:  sql.NewQualifiedName("dbo", "VAll"),
			kind:  plan.Create,
			body:  "select Id from A union all select Id from B",
		},
	}

	for _, tt := range fixtures {
		t.Run(tt.query, func(t *testing.T) {
			require := require.New(t)

			create, err := ParseCreateView(tt.query)
			require.NoError(err)
			require.Equal(tt.name, create.Name)
			require.Equal(tt.kind, create.Kind)
			require.Equal(tt.columns, create.Columns)
			require.Equal(tt.attributes, create.Attributes)
			require.Equal(tt.checkOption, create.CheckOption)
			require.Equal(tt.body, plan.String(create.Definition))
		})
	}
}

func TestParseCreateViewErrors(t *testing.T) {
	var fixtures = []struct {
		query string
		kind  interface{ Is(error) bool }
	}{
		{"SELECT 1", ErrMalformedCreateView},
		{"CREATE TABLE t AS SELECT 1", ErrMalformedCreateView},
		{"CREATE VIEW [v AS SELECT 1", ErrMalformedCreateView},
		{"CREATE VIEW a.b.c.d AS SELECT 1", ErrMalformedCreateView},
		{"CREATE VIEW v SELECT 1", ErrMalformedCreateView},
		{"CREATE VIEW v AS SELECT FROM", ErrParseView},
		{"CREATE VIEW v AS DELETE FROM t", ErrUnsupportedStatement},
	}

	for _, tt := range fixtures {
		t.Run(tt.query, func(t *testing.T) {
			_, err := ParseCreateView(tt.query)
			require.Error(t, err)
			require.True(t, tt.kind.Is(err), "unexpected error: %s", err)
		})
	}
}

func TestParse(t *testing.T) {
	require := require.New(t)

	create, err := Parse(context.Background(), "CREATE VIEW [dbo].[VPeople] AS SELECT [p].[Id] FROM [dbo].[People] [p]")
	require.NoError(err)
	require.Equal("[dbo].[VPeople]", create.Name.String())
	require.Equal("select p.Id from dbo.People as p", sqlparser.String(create.Definition))
	require.Equal("CREATE VIEW [dbo].[VPeople] AS select p.Id from dbo.People as p", create.String())

	_, err = Parse(context.Background(), "  \n")
	require.Error(err)
	require.True(ErrMalformedCreateView.Is(err))
}

func TestCreateOrAlter(t *testing.T) {
	var fixtures = []struct {
		query    string
		expected string
	}{
		{"CREATE VIEW dbo.V AS SELECT 1", "CREATE OR ALTER VIEW dbo.V AS SELECT 1"},
		{"create   \n  view dbo.V as select 1", "CREATE OR ALTER VIEW dbo.V as select 1"},
		{"CrEaTe\tViEw dbo.V AS SELECT 1", "CREATE OR ALTER VIEW dbo.V AS SELECT 1"},
		{"CREATE OR ALTER VIEW dbo.V AS SELECT 1", "CREATE OR ALTER VIEW dbo.V AS SELECT 1"},
		{"-- a view\nCREATE VIEW dbo.V AS SELECT 1", "-- a view\nCREATE OR ALTER VIEW dbo.V AS SELECT 1"},
		{"SELECT 1", "SELECT 1"},
	}

	for _, tt := range fixtures {
		t.Run(tt.query, func(t *testing.T) {
			require := require.New(t)

			result := CreateOrAlter(tt.query)
			require.Equal(tt.expected, result)
			require.Equal(result, CreateOrAlter(result))
		})
	}
}
