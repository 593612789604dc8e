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

func columnNames(cols []*sqlparser.ColName) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = sqlparser.String(col)
	}
	return names
}

func TestAnalyzeReferences(t *testing.T) {
	require := require.New(t)

	v := parseTestView(t, newTestCatalog(), `CREATE VIEW dbo.VTest AS
		SELECT p.Id, DATEADD(dd, 1, p.Born) AS NextDay, db.p.FirstName
		FROM dbo.People p
		JOIN dbo.VOrders o ON o.PersonId = p.Id`)
	refs := v.References

	require.Equal(
		[]string{"p.Id", "p.Born", "p.FirstName", "o.PersonId", "p.Id"},
		columnNames(refs.Columns),
	)

	require.Len(refs.Tables, 1)
	require.Equal(sql.NewQualifiedName("dbo", "People"), refs.Tables[0].Name)
	require.Equal("p", refs.Tables[0].Alias)
	require.True(refs.Tables[0].Removable)

	require.Len(refs.Views, 1)
	require.Equal(sql.NewQualifiedName("dbo", "VOrders"), refs.Views[0].Name)
	require.Equal("o", refs.Views[0].Alias)
	require.True(refs.Views[0].Removable)

	require.NotNil(refs.Query)
	require.Len(refs.Query.SelectExprs, 3)
}

func TestAnalyzeReferencesRemovable(t *testing.T) {
	require := require.New(t)

	v := parseTestView(t, newTestCatalog(), `CREATE VIEW dbo.VTest AS
		SELECT p.Id FROM dbo.VPeople p WHERE p.Id IN (SELECT o.PersonId FROM dbo.Orders o, dbo.Items i WHERE i.OrderId = o.Id)`)
	refs := v.References

	require.Len(refs.Views, 1)
	require.False(refs.Views[0].Removable)

	require.Len(refs.Tables, 2)
	for _, table := range refs.Tables {
		require.True(table.Removable, table.String())
	}
}

func TestAnalyzeReferencesStars(t *testing.T) {
	require := require.New(t)

	v := parseTestView(t, newTestCatalog(), `CREATE VIEW dbo.VTest AS
		SELECT p.*, o.Id FROM dbo.People p JOIN dbo.Orders o ON o.PersonId = p.Id
		WHERE EXISTS (SELECT * FROM dbo.Items i WHERE i.OrderId = o.Id)`)
	refs := v.References

	require.Len(refs.Stars, 1)
	require.True(refs.starReads("p"))
	require.True(refs.starReads("P"))
	require.False(refs.starReads("o"))
	require.False(refs.starReads("i"))

	v = parseTestView(t, newTestCatalog(), "CREATE VIEW dbo.VTest AS SELECT * FROM dbo.People p")
	require.True(v.References.starReads("p"))
	require.True(v.References.starReads("x"))
}

func TestReferencesUsages(t *testing.T) {
	require := require.New(t)

	v := parseTestView(t, newTestCatalog(), `CREATE VIEW dbo.VTest AS
		SELECT p.Id, P.FirstName, Amount FROM dbo.People p JOIN dbo.Orders o ON o.PersonId = p.Id`)
	refs := v.References

	require.Equal([]string{"p.Id", "P.FirstName", "Amount", "p.Id"}, columnNames(refs.usages("p")))
	require.Equal([]string{"Amount", "o.PersonId"}, columnNames(refs.usages("o")))
	require.Equal([]string{"Amount"}, columnNames(refs.singlePartColumns()))

	refs.removeColumns(refs.usages("o"))
	require.Equal([]string{"p.Id", "P.FirstName", "p.Id"}, columnNames(refs.Columns))
}

func TestReferencesString(t *testing.T) {
	v := parseTestView(t, newTestCatalog(), "CREATE VIEW dbo.VTest AS SELECT p.Id FROM dbo.VPeople p JOIN dbo.Orders o ON o.PersonId = p.Id")

	expected := `References
 ├─ Tables ([dbo].[Orders] o)
 ├─ Views ([dbo].[VPeople] p)
 └─ Columns (p.Id, o.PersonId, p.Id)
`
	require.Equal(t, expected, v.References.String())
}

func TestIgnoredParameters(t *testing.T) {
	require := require.New(t)

	for _, fn := range []string{"DATEADD", "datediff", "DateDiff_Big", "DATENAME", "datepart", "DATETRUNC"} {
		indexes, ok := ignoredParameters(fn)
		require.True(ok, fn)
		require.Equal([]int{0}, indexes)
	}

	_, ok := ignoredParameters("coalesce")
	require.False(ok)
}
