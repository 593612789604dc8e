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

package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrViewNotFound is returned when a view definition is neither seeded nor available from the
	// catalog's source.
	ErrViewNotFound = errors.NewKind("view not found: %s%s")

	// ErrViewSource is returned when the source of a catalog fails to list or fetch views.
	ErrViewSource = errors.NewKind("unable to read views from source")

	// ErrInvalidQualifiedName is returned when an object name has more parts than a
	// database.schema.name triple.
	ErrInvalidQualifiedName = errors.NewKind("invalid object name: %q")
)
