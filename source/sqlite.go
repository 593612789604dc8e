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

import "github.com/dolthub/go-view-inliner/sql"

// sqliteDialect reads views from sqlite_master, which keeps the full CREATE VIEW statement. SQLite has a
// single schema, every view is listed under the default one.
type sqliteDialect struct{}

func (sqliteDialect) listViews() string {
	return `SELECT '` + sql.DefaultSchema + `', name FROM sqlite_master WHERE type = 'view' ORDER BY name`
}

func (sqliteDialect) definition(name sql.QualifiedName) (string, []interface{}) {
	return `SELECT sql FROM sqlite_master WHERE type = 'view' AND name = ? COLLATE NOCASE`,
		[]interface{}{name.Name}
}

func (sqliteDialect) createView(_ sql.QualifiedName, stored string) string {
	return stored
}
