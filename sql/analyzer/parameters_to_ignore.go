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

// parametersToIgnore lists the built-in functions taking a date part keyword, such as
// DATEADD(month, 1, t.Created), by the positions of those keywords. The parser sees the keyword as
// a column reference.
var parametersToIgnore = map[string][]int{
	"dateadd":      {0},
	"datediff":     {0},
	"datediff_big": {0},
	"datename":     {0},
	"datepart":     {0},
	"datetrunc":    {0},
}

func ignoredParameters(function string) ([]int, bool) {
	indexes, ok := parametersToIgnore[strings.ToLower(function)]
	return indexes, ok
}
