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

import (
	"strings"
)

// DefaultSchema is the schema assumed for object names written without one.
const DefaultSchema = "dbo"

// QualifiedName identifies a schema object by its schema and base name. Both parts keep the casing they
// were written with; comparisons go through the canonical form returned by String.
type QualifiedName struct {
	Schema string
	Name   string
}

// NewQualifiedName returns the qualified name for the given schema and base name.
func NewQualifiedName(schema, name string) QualifiedName {
	return QualifiedName{Schema: schema, Name: name}
}

// ParseQualifiedName parses a dotted object name such as dbo.People, [dbo].[People] or `dbo`.`People`.
// A three part name drops its leading database part.
func ParseQualifiedName(s string) (QualifiedName, error) {
	parts, err := splitIdentifier(s)
	if err != nil {
		return QualifiedName{}, err
	}

	return NewQualifiedNameFromParts(parts...)
}

// NewQualifiedNameFromParts builds a name from already unquoted identifier parts. A leading database
// part is dropped.
func NewQualifiedNameFromParts(parts ...string) (QualifiedName, error) {
	switch len(parts) {
	case 1:
		return NewQualifiedName("", parts[0]), nil
	case 2:
		return NewQualifiedName(parts[0], parts[1]), nil
	case 3:
		return NewQualifiedName(parts[1], parts[2]), nil
	default:
		return QualifiedName{}, ErrInvalidQualifiedName.New(strings.Join(parts, "."))
	}
}

// MustParseQualifiedName is like ParseQualifiedName but panics on malformed names. Meant for tests and
// literal names.
func MustParseQualifiedName(s string) QualifiedName {
	name, err := ParseQualifiedName(s)
	if err != nil {
		panic(err)
	}
	return name
}

// SchemaOrDefault returns the schema of the name, or DefaultSchema when it has none.
func (n QualifiedName) SchemaOrDefault() string {
	if n.Schema == "" {
		return DefaultSchema
	}
	return n.Schema
}

// String returns the canonical quoted form, e.g. [dbo].[People].
func (n QualifiedName) String() string {
	return EncodeIdentifier(n.SchemaOrDefault()) + "." + EncodeIdentifier(n.Name)
}

// Equal reports whether both names identify the same object.
func (n QualifiedName) Equal(other QualifiedName) bool {
	return n.Key() == other.Key()
}

// Key returns the lookup key for the name. Object names are matched case-insensitively.
func (n QualifiedName) Key() string {
	return strings.ToLower(n.String())
}

// EncodeIdentifier quotes an identifier with square brackets, doubling any closing bracket.
func EncodeIdentifier(id string) string {
	return "[" + strings.Replace(id, "]", "]]", -1) + "]"
}

func splitIdentifier(s string) ([]string, error) {
	var (
		parts []string
		buf   strings.Builder
	)

	s = strings.TrimSpace(s)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '[', '`', '"':
			closing := c
			if c == '[' {
				closing = ']'
			}
			j := i + 1
			for ; j < len(s); j++ {
				if s[j] != closing {
					buf.WriteByte(s[j])
					continue
				}
				if j+1 < len(s) && s[j+1] == closing {
					buf.WriteByte(closing)
					j++
					continue
				}
				break
			}
			if j >= len(s) {
				return nil, ErrInvalidQualifiedName.New(s)
			}
			i = j
		case '.':
			parts = append(parts, buf.String())
			buf.Reset()
		case ' ', '\t', '\n', '\r':
		default:
			buf.WriteByte(c)
		}
	}
	parts = append(parts, buf.String())

	for _, p := range parts {
		if p == "" {
			return nil, ErrInvalidQualifiedName.New(s)
		}
	}

	return parts, nil
}
