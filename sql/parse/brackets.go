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

package parse

import (
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrUnterminatedIdentifier is returned when a bracket quoted identifier is never closed.
var ErrUnterminatedIdentifier = errors.NewKind("unterminated identifier starting at offset %d")

// translateBrackets rewrites [bracket] quoted identifiers into `backtick` quoted ones so the MySQL
// grammar accepts them. String literals, quoted identifiers and comments are copied verbatim.
func translateBrackets(query string) (string, error) {
	if !strings.ContainsRune(query, '[') {
		return query, nil
	}

	var sb strings.Builder
	sb.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := quotedEnd(query, i)
			sb.WriteString(query[i:end])
			i = end - 1
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = len(query) - i
			}
			sb.WriteString(query[i : i+end])
			i += end - 1
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			end := strings.Index(query[i+2:], "*/")
			if end < 0 {
				sb.WriteString(query[i:])
				return sb.String(), nil
			}
			sb.WriteString(query[i : i+2+end+2])
			i += 2 + end + 1
		case c == '[':
			var ident strings.Builder
			j := i + 1
			for ; j < len(query); j++ {
				if query[j] == ']' {
					if j+1 < len(query) && query[j+1] == ']' {
						ident.WriteByte(']')
						j++
						continue
					}
					break
				}
				ident.WriteByte(query[j])
			}

			if j >= len(query) {
				return "", ErrUnterminatedIdentifier.New(i)
			}

			sb.WriteByte('`')
			sb.WriteString(strings.Replace(ident.String(), "`", "``", -1))
			sb.WriteByte('`')
			i = j
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

// quotedEnd returns the offset just past the quoted section starting at start. Unterminated
// sections run to the end of the query.
func quotedEnd(query string, start int) int {
	quote := query[start]
	for i := start + 1; i < len(query); i++ {
		switch query[i] {
		case '\\':
			if quote != '`' {
				i++
			}
		case quote:
			if i+1 < len(query) && query[i+1] == quote {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(query)
}
