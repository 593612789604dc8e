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

package source

import (
	"context"
	gosql "database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/go-view-inliner/sql"
)

var sqliteSchema = []string{
	"CREATE TABLE People (Id INTEGER PRIMARY KEY, FirstName TEXT, LastName TEXT)",
	"CREATE TABLE Orders (Id INTEGER PRIMARY KEY, PersonId INTEGER, Amount REAL)",
	"CREATE VIEW VPeople AS SELECT Id, FirstName, LastName FROM People",
	"CREATE VIEW VOrders AS SELECT o.Id, o.Amount, p.FirstName FROM Orders o JOIN VPeople p ON p.Id = o.PersonId",
}

func newSQLiteSource(t *testing.T) *Database {
	t.Helper()
	require := require.New(t)

	dsn := filepath.Join(t.TempDir(), "views.db")

	db, err := gosql.Open("sqlite3", dsn)
	require.NoError(err)
	for _, stmt := range sqliteSchema {
		_, err := db.Exec(stmt)
		require.NoError(err, stmt)
	}
	require.NoError(db.Close())

	src, err := Open(context.Background(), "sqlite3", dsn)
	require.NoError(err)
	t.Cleanup(func() { _ = src.Close() })

	return src
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "")
	require.True(t, ErrUnsupportedDriver.Is(err))
}

func TestSQLiteViews(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	src := newSQLiteSource(t)

	names, err := src.Views(ctx)
	require.NoError(err)
	require.Equal([]sql.QualifiedName{
		sql.NewQualifiedName("dbo", "VOrders"),
		sql.NewQualifiedName("dbo", "VPeople"),
	}, names)

	definition, err := src.Definition(ctx, sql.MustParseQualifiedName("vpeople"))
	require.NoError(err)
	require.Equal(sqliteSchema[2], definition)

	_, err = src.Definition(ctx, sql.MustParseQualifiedName("People"))
	require.True(ErrDefinitionNotFound.Is(err))
}

func TestSQLiteCatalog(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	c, err := sql.NewCatalogFromSource(ctx, newSQLiteSource(t))
	require.NoError(err)

	require.True(c.IsView(sql.MustParseQualifiedName("dbo.VOrders")))
	require.True(c.IsView(sql.MustParseQualifiedName("VPeople")))
	require.False(c.IsView(sql.MustParseQualifiedName("Orders")))

	definition, err := c.ViewDefinition(ctx, sql.MustParseQualifiedName("VOrders"))
	require.NoError(err)
	require.Equal(sqliteSchema[3], definition)
}

func TestSnapshot(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "views.snapshot")

	n, err := SaveSnapshot(ctx, path, newSQLiteSource(t))
	require.NoError(err)
	require.Equal(2, n)

	snapshot, err := OpenSnapshot(path)
	require.NoError(err)
	defer snapshot.Close()

	names, err := snapshot.Views(ctx)
	require.NoError(err)
	require.Equal([]sql.QualifiedName{
		sql.NewQualifiedName("dbo", "VOrders"),
		sql.NewQualifiedName("dbo", "VPeople"),
	}, names)

	definition, err := snapshot.Definition(ctx, sql.MustParseQualifiedName("dbo.VPeople"))
	require.NoError(err)
	require.Equal(sqliteSchema[2], definition)

	definition, err = snapshot.Definition(ctx, sql.MustParseQualifiedName("DBO.vorders"))
	require.NoError(err)
	require.Equal(sqliteSchema[3], definition)

	_, err = snapshot.Definition(ctx, sql.MustParseQualifiedName("dbo.Missing"))
	require.True(ErrDefinitionNotFound.Is(err))
}

func TestSnapshotOverwrite(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "views.snapshot")
	src := newSQLiteSource(t)

	_, err := SaveSnapshot(ctx, path, src)
	require.NoError(err)
	n, err := SaveSnapshot(ctx, path, src)
	require.NoError(err)
	require.Equal(2, n)

	snapshot, err := OpenSnapshot(path)
	require.NoError(err)
	defer snapshot.Close()

	names, err := snapshot.Views(ctx)
	require.NoError(err)
	require.Len(names, 2)
}

func TestOpenSnapshotErrors(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()

	_, err := OpenSnapshot(filepath.Join(dir, "missing.snapshot"))
	require.Error(err)

	empty := filepath.Join(dir, "empty.snapshot")
	_, err = SaveSnapshot(context.Background(), empty, emptySource{})
	require.NoError(err)
	_, err = OpenSnapshot(empty)
	require.NoError(err)

	garbage := filepath.Join(dir, "garbage.snapshot")
	require.NoError(os.WriteFile(garbage, []byte("not a bolt file"), 0640))
	_, err = OpenSnapshot(garbage)
	require.Error(err)
}

type emptySource struct{}

func (emptySource) Views(context.Context) ([]sql.QualifiedName, error) { return nil, nil }

func (emptySource) Definition(_ context.Context, name sql.QualifiedName) (string, error) {
	return "", ErrDefinitionNotFound.New(name)
}
