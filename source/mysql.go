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

// mysqlDialect reads views from information_schema. Schemas map to MySQL databases, and only the SELECT
// body is stored, so the CREATE VIEW header is rebuilt around it.
type mysqlDialect struct{}

func (mysqlDialect) listViews() string {
	return `SELECT TABLE_SCHEMA, TABLE_NAME FROM information_schema.VIEWS
		WHERE TABLE_SCHEMA NOT IN ('mysql', 'sys', 'information_schema', 'performance_schema')
		ORDER BY TABLE_SCHEMA, TABLE_NAME`
}

func (mysqlDialect) definition(name sql.QualifiedName) (string, []interface{}) {
	return `SELECT VIEW_DEFINITION FROM information_schema.VIEWS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`,
		[]interface{}{name.SchemaOrDefault(), name.Name}
}

func (mysqlDialect) createView(name sql.QualifiedName, stored string) string {
	return "CREATE VIEW " + name.String() + " AS " + stored
}
