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
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"

	"github.com/dolthub/go-view-inliner/sql"
)

func TestPruneColumns(t *testing.T) {
	testCases := []struct {
		name     string
		outer    string
		inner    string
		expected string
		columns  []string
		stripped int
	}{
		{
			"unused columns",
			"CREATE VIEW dbo.VTest AS SELECT p.Id, p.LastName FROM dbo.VPeople p",
			"dbo.VPeople",
			"select Id, LastName from dbo.People",
			nil,
			1,
		},
		{
			"case insensitive",
			"CREATE VIEW dbo.VTest AS SELECT P.ID, p.firstname, p.LASTNAME FROM dbo.VPeople p",
			"dbo.VPeople",
			"select Id, FirstName, LastName from dbo.People",
			nil,
			0,
		},
		{
			"declared columns",
			"CREATE VIEW dbo.VTest AS SELECT r.PersonId, r.Surname FROM dbo.VRenamed r",
			"dbo.VRenamed",
			"select Id, LastName from dbo.People",
			[]string{"PersonId", "Surname"},
			1,
		},
		{
			"union branches",
			"CREATE VIEW dbo.VTest AS SELECT a.FirstName FROM dbo.VAll a",
			"dbo.VAll",
			"select FirstName from dbo.People union all select FirstName from dbo.Employees",
			nil,
			4,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			c := newTestCatalog()
			outer := parseTestView(t, c, tt.outer)
			inner := parseTestView(t, c, testViews[tt.inner])

			report := NewReport()
			NewDefault(c).pruneColumns(outer, outer.References.Views[0], inner, report)

			require.Equal(tt.expected, sqlparser.String(inner.Node.Definition))
			require.Equal(tt.columns, inner.Node.Columns)
			require.Equal(tt.stripped, report.ColumnsStripped)
		})
	}
}

func TestPruneColumnsNothingRead(t *testing.T) {
	require := require.New(t)

	c := newTestCatalog()
	outer := parseTestView(t, c, "CREATE VIEW dbo.VTest AS SELECT 1 FROM dbo.VOrders o")
	inner := parseTestView(t, c, testViews["dbo.VOrders"])

	report := NewReport()
	NewDefault(c).pruneColumns(outer, outer.References.Views[0], inner, report)

	require.Empty(inner.References.Query.SelectExprs)
	require.Empty(inner.References.Columns)
	require.Equal(3, report.ColumnsStripped)
}

func TestPruneColumnsDeregistersColumns(t *testing.T) {
	require := require.New(t)

	c := newTestCatalog()
	outer := parseTestView(t, c, "CREATE VIEW dbo.VTest AS SELECT p.Id FROM dbo.VPeopleAddr p")
	inner := parseTestView(t, c, testViews["dbo.VPeopleAddr"])
	require.Len(inner.References.usages("p"), 3)

	NewDefault(c).pruneColumns(outer, outer.References.Views[0], inner, NewReport())

	require.Equal("select p.Id from dbo.People as p join dbo.Addresses as a on a.PersonId = p.Id", sqlparser.String(inner.Node.Definition))
	require.Equal([]string{"p.Id", "a.PersonId", "p.Id"}, columnNames(inner.References.Columns))
}

func TestPruneColumnsKeepsUnnamedExpressions(t *testing.T) {
	require := require.New(t)

	c := newTestCatalog()
	c.AddViewDefinition(
		sql.MustParseQualifiedName("dbo.VTotals"),
		"CREATE VIEW dbo.VTotals AS SELECT PersonId, COUNT(*), SUM(Amount) AS Total FROM dbo.Orders GROUP BY PersonId",
	)

	outer := parseTestView(t, c, "CREATE VIEW dbo.VTest AS SELECT t.PersonId FROM dbo.VTotals t")
	inner := parseTestView(t, c, "CREATE VIEW dbo.VTotals AS SELECT PersonId, COUNT(*), SUM(Amount) AS Total FROM dbo.Orders GROUP BY PersonId")

	report := NewReport()
	NewDefault(c).pruneColumns(outer, outer.References.Views[0], inner, report)

	require.Len(inner.References.Query.SelectExprs, 2)
	require.NotContains(sqlparser.String(inner.Node.Definition), "Total")
	require.Equal(1, report.ColumnsStripped)
}

func TestAddPlaceholder(t *testing.T) {
	require := require.New(t)

	v := parseTestView(t, newTestCatalog(), "CREATE VIEW dbo.VTest AS SELECT 1 FROM dbo.People UNION SELECT 2 FROM dbo.Employees")
	addPlaceholder(v)

	require.Equal("select 1, 0 as unused from dbo.People union select 2, 0 as unused from dbo.Employees", sqlparser.String(v.Node.Definition))
}
