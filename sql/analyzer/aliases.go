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

import "strings"

// resolveAliases gives every view reference without an alias its own base name as alias, unless
// another source of the query already goes by that name. References left without an alias block
// the inlining of the view that uses them.
func resolveAliases(refs *References) {
	used := make(map[string]struct{})
	for _, sources := range [][]*TableReference{refs.Tables, refs.Views} {
		for _, t := range sources {
			if t.Alias != "" {
				used[strings.ToLower(t.Alias)] = struct{}{}
			}
		}
	}

	for _, v := range refs.Views {
		if v.Alias != "" {
			continue
		}

		alias := strings.ToLower(v.Name.Name)
		if _, ok := used[alias]; ok {
			continue
		}

		used[alias] = struct{}{}
		v.Alias = v.Name.Name
	}
}
