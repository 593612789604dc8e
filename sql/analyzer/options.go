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

// Options control which parts of the referenced views are stripped while inlining them.
type Options struct {
	// StripUnusedColumns removes the select items of a referenced view that the outer query never
	// reads.
	StripUnusedColumns bool
	// StripUnusedJoins removes joined views and tables that contribute at most the column they are
	// joined on. The row count of a query can change when such a join filters or multiplies rows.
	StripUnusedJoins bool
}

// DefaultOptions strips unused columns but keeps every join.
func DefaultOptions() Options {
	return Options{StripUnusedColumns: true}
}

// RecommendedOptions strips unused columns and joins.
func RecommendedOptions() Options {
	return Options{StripUnusedColumns: true, StripUnusedJoins: true}
}
