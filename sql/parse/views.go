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
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/plan"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

var (
	// ErrMalformedCreateView is returned when the statement is not a CREATE VIEW statement.
	ErrMalformedCreateView = errors.NewKind("malformed CREATE VIEW statement")

	// ErrParseView is returned when the body of a view cannot be parsed.
	ErrParseView = errors.NewKind("unable to parse the definition of view %s")

	// ErrUnsupportedStatement is returned when the body of a view is not a SELECT query.
	ErrUnsupportedStatement = errors.NewKind("view definition of %s is not a SELECT query: %T")
)

var (
	createViewRegex  = regexp.MustCompile(`(?i)\bCREATE\s+VIEW\b`)
	checkOptionRegex = regexp.MustCompile(`(?is)\s+WITH\s+CHECK\s+OPTION\s*$`)
)

// ParseCreateView parses
// CREATE [OR ALTER | OR REPLACE] VIEW name [(col1, col2, ...)] [WITH attr, ...] AS select_statement
// and returns a CreateView node in case of success. Bracket quoted identifiers are accepted.
func ParseCreateView(query string) (*plan.CreateView, error) {
	translated, err := translateBrackets(query)
	if err != nil {
		return nil, ErrMalformedCreateView.Wrap(err)
	}

	r := bufio.NewReader(strings.NewReader(translated))

	var (
		nameParts  []string
		columns    []string
		attributes []string
		kind       plan.CreateViewKind
		body       string
	)

	err = parseFuncs{
		skipSpaces,
		expect("create"),
		skipSpaces,
		readCreateKind(&kind),
		skipSpaces,
		expect("view"),
		skipSpaces,
		readQualifiedName(&nameParts),
		skipSpaces,
		maybeList('(', ',', ')', &columns),
		skipSpaces,
		readAttributes(&attributes),
		skipSpaces,
		expect("as"),
		skipSpaces,
		readRemaining(&body),
	}.exec(r)

	if err != nil {
		return nil, ErrMalformedCreateView.Wrap(err)
	}

	name, err := sql.NewQualifiedNameFromParts(nameParts...)
	if err != nil {
		return nil, ErrMalformedCreateView.Wrap(err)
	}

	body = strings.TrimRightFunc(body, isSpaceOrSemicolon)
	checkOption := checkOptionRegex.MatchString(body)
	if checkOption {
		body = checkOptionRegex.ReplaceAllString(body, "")
	}

	stmt, err := sqlparser.Parse(body)
	if err != nil {
		return nil, ErrParseView.Wrap(err, name)
	}

	definition, ok := stmt.(sqlparser.SelectStatement)
	if !ok {
		return nil, ErrUnsupportedStatement.New(name, stmt)
	}

	create := plan.NewCreateView(name, kind, columns, definition)
	create.Attributes = attributes
	create.CheckOption = checkOption

	return create, nil
}

// Parse parses the given view definition and returns the corresponding node.
func Parse(ctx context.Context, query string) (*plan.CreateView, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "parse", opentracing.Tag{Key: "query", Value: query})
	defer span.Finish()

	if strings.TrimSpace(query) == "" {
		logrus.WithField("query", query).Debug("view definition is empty")
		return nil, ErrMalformedCreateView.New()
	}

	create, err := ParseCreateView(query)
	if err != nil {
		span.SetTag("error", true)
		return nil, err
	}

	span.SetTag("view", create.Name.String())
	return create, nil
}

// CreateOrAlter turns the first CREATE VIEW of the query into CREATE OR ALTER VIEW. Queries already
// using CREATE OR ALTER VIEW are returned unchanged.
func CreateOrAlter(query string) string {
	loc := createViewRegex.FindStringIndex(query)
	if loc == nil {
		return query
	}

	return query[:loc[0]] + "CREATE OR ALTER VIEW" + query[loc[1]:]
}

func readCreateKind(kind *plan.CreateViewKind) parseFunc {
	return func(rd *bufio.Reader) error {
		var or bool
		if err := maybe(&or, "or")(rd); err != nil || !or {
			return err
		}

		var verb string
		if err := (parseFuncs{skipSpaces, oneOf(&verb, "alter", "replace")}).exec(rd); err != nil {
			return err
		}

		if verb == "alter" {
			*kind = plan.CreateOrAlter
		} else {
			*kind = plan.CreateOrReplace
		}
		return nil
	}
}

// readAttributes reads the optional WITH SCHEMABINDING, VIEW_METADATA, ... clause of a view header.
func readAttributes(attributes *[]string) parseFunc {
	return func(rd *bufio.Reader) error {
		var with bool
		if err := maybe(&with, "with")(rd); err != nil || !with {
			return err
		}

		for {
			var (
				attribute string
				comma     bool
			)

			err := parseFuncs{
				skipSpaces,
				readIdent(&attribute),
				skipSpaces,
				maybeRune(&comma, ','),
			}.exec(rd)
			if err != nil {
				return err
			}

			if attribute == "" {
				return ErrUnexpectedSyntax.New("view attribute", "")
			}
			*attributes = append(*attributes, strings.ToUpper(attribute))

			if !comma {
				return nil
			}
		}
	}
}

func isSpaceOrSemicolon(r rune) bool {
	return r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
