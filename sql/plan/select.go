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

import "gopkg.in/src-d/go-vitess.v1/vt/sqlparser"

// FirstSelect returns the left-most query specification of a select statement.
func FirstSelect(stmt sqlparser.SelectStatement) *sqlparser.Select {
	for {
		switch s := stmt.(type) {
		case *sqlparser.Select:
			return s
		case *sqlparser.Union:
			stmt = s.Left
		case *sqlparser.ParenSelect:
			stmt = s.Select
		default:
			return nil
		}
	}
}

// Selects returns every query specification of a set operation, left to right. A plain SELECT
// yields itself.
func Selects(stmt sqlparser.SelectStatement) []*sqlparser.Select {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return []*sqlparser.Select{s}
	case *sqlparser.Union:
		return append(Selects(s.Left), Selects(s.Right)...)
	case *sqlparser.ParenSelect:
		return Selects(s.Select)
	default:
		return nil
	}
}
