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

import "context"

// knownViews returns the given view and every view it references, directly or through other views,
// keyed by canonical lower-case name. Views whose definition cannot be fetched or parsed are left
// out together with the views only they reference.
func (a *Analyzer) knownViews(ctx context.Context, root *View) map[string]*View {
	known := map[string]*View{root.Name.Key(): root}

	var add func(ref *TableReference)
	add = func(ref *TableReference) {
		k := ref.Name.Key()
		if _, ok := known[k]; ok {
			return
		}

		definition, err := a.Catalog.ViewDefinition(ctx, ref.Name)
		if err != nil {
			a.Log("skipping view %s: %s", ref.Name, err)
			return
		}

		v, err := a.ParseView(ctx, definition)
		if err != nil {
			a.Log("skipping view %s: %s", ref.Name, err)
			return
		}

		known[k] = v
		for _, nested := range v.References.Views {
			add(nested)
		}
	}

	for _, ref := range root.References.Views {
		add(ref)
	}

	return known
}
