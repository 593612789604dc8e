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
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-view-inliner/sql"
)

var (
	// ErrUnsupportedDriver is returned when opening a database with a driver there is no dialect for.
	ErrUnsupportedDriver = errors.NewKind("unsupported database driver: %s")

	// ErrDefinitionNotFound is returned when the database has no definition for a view.
	ErrDefinitionNotFound = errors.NewKind("no definition found for view %s")
)

// dialect holds the catalog queries of a database engine.
type dialect interface {
	// listViews returns a query yielding schema and name columns for every view.
	listViews() string
	// definition returns a query yielding the definition of the view identified by the args.
	definition(name sql.QualifiedName) (string, []interface{})
	// createView turns the stored definition into a CREATE VIEW statement.
	createView(name sql.QualifiedName, stored string) string
}

var dialects = map[string]dialect{
	"mysql":   mysqlDialect{},
	"sqlite3": sqliteDialect{},
}

// Database is a sql.ViewSource reading view definitions from a live database.
type Database struct {
	db      *gosql.DB
	dialect dialect
}

var _ sql.ViewSource = (*Database)(nil)

// Open connects to the database identified by the driver name and DSN. The supported drivers are
// mysql and sqlite3.
func Open(ctx context.Context, driver, dsn string) (*Database, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, ErrUnsupportedDriver.New(driver)
	}

	db, err := gosql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logrus.WithField("driver", driver).Debug("connected to view source")
	return &Database{db: db, dialect: d}, nil
}

// Views implements sql.ViewSource.
func (d *Database) Views(ctx context.Context) ([]sql.QualifiedName, error) {
	rows, err := d.db.QueryContext(ctx, d.dialect.listViews())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []sql.QualifiedName
	for rows.Next() {
		var schema, name string
		if err := rows.Scan(&schema, &name); err != nil {
			return nil, err
		}
		names = append(names, sql.NewQualifiedName(schema, name))
	}

	return names, rows.Err()
}

// Definition implements sql.ViewSource.
func (d *Database) Definition(ctx context.Context, name sql.QualifiedName) (string, error) {
	query, args := d.dialect.definition(name)

	var stored gosql.NullString
	err := d.db.QueryRowContext(ctx, query, args...).Scan(&stored)
	if err == gosql.ErrNoRows || (err == nil && strings.TrimSpace(stored.String) == "") {
		return "", ErrDefinitionNotFound.New(name)
	}
	if err != nil {
		return "", err
	}

	return d.dialect.createView(name, stored.String), nil
}

// Close closes the connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}
