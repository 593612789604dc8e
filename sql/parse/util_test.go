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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func remaining(t *testing.T, r *bufio.Reader) string {
	var rest string
	require.NoError(t, readRemaining(&rest)(r))
	return rest
}

func TestSkipSpaces(t *testing.T) {
	testFixtures := []struct {
		input             string
		expectedRemaining string
	}{
		{"  \n\tcreate", "create"},
		{"-- comment\n  create", "create"},
		{"/* a\n * b */create", "create"},
		{"/**/ -- x\n/* y */ create view", "create view"},
		{"- create", "- create"},
		{"", ""},
		{"-- trailing", ""},
	}

	for _, fixture := range testFixtures {
		t.Run(fixture.input, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(fixture.input))
			require.NoError(t, skipSpaces(r))
			require.Equal(t, fixture.expectedRemaining, remaining(t, r))
		})
	}
}

func TestMaybe(t *testing.T) {
	testFixtures := []struct {
		input             string
		keyword           string
		matched           bool
		expectedRemaining string
	}{
		{"OR ALTER", "or", true, " ALTER"},
		{"or", "or", true, ""},
		{"order", "or", false, "order"},
		{"view", "or", false, "view"},
		{"o", "or", false, "o"},
		{"WITH SCHEMABINDING", "with", true, " SCHEMABINDING"},
	}

	for _, fixture := range testFixtures {
		t.Run(fixture.input, func(t *testing.T) {
			require := require.New(t)

			var matched bool
			r := bufio.NewReader(strings.NewReader(fixture.input))
			require.NoError(maybe(&matched, fixture.keyword)(r))
			require.Equal(fixture.matched, matched)
			require.Equal(fixture.expectedRemaining, remaining(t, r))
		})
	}
}

func TestMaybeList(t *testing.T) {
	testFixtures := []struct {
		input             string
		expectedList      []string
		expectedRemaining string
	}{
		{"(a, b,c) AS", []string{"a", "b", "c"}, " AS"},
		{"( `first name` , Id ) AS", []string{"first name", "Id"}, " AS"},
		{"AS", nil, "AS"},
	}

	for _, fixture := range testFixtures {
		t.Run(fixture.input, func(t *testing.T) {
			require := require.New(t)

			var list []string
			r := bufio.NewReader(strings.NewReader(fixture.input))
			require.NoError(maybeList('(', ',', ')', &list)(r))
			require.Equal(fixture.expectedList, list)
			require.Equal(fixture.expectedRemaining, remaining(t, r))
		})
	}

	var list []string
	r := bufio.NewReader(strings.NewReader("(a b)"))
	err := maybeList('(', ',', ')', &list)(r)
	require.Error(t, err)
	require.True(t, ErrUnexpectedSyntax.Is(err))
}

func TestReadQualifiedName(t *testing.T) {
	testFixtures := []struct {
		input             string
		expectedParts     []string
		expectedRemaining string
	}{
		{"VPeople AS", []string{"VPeople"}, "AS"},
		{"dbo.VPeople(Id)", []string{"dbo", "VPeople"}, "(Id)"},
		{"`db`.`my``schema`.`V`", []string{"db", "my`schema", "V"}, ""},
		{"dbo . VPeople", []string{"dbo", "VPeople"}, ""},
	}

	for _, fixture := range testFixtures {
		t.Run(fixture.input, func(t *testing.T) {
			require := require.New(t)

			var parts []string
			r := bufio.NewReader(strings.NewReader(fixture.input))
			require.NoError(readQualifiedName(&parts)(r))
			require.Equal(fixture.expectedParts, parts)
			require.Equal(fixture.expectedRemaining, remaining(t, r))
		})
	}

	var parts []string
	err := readQualifiedName(&parts)(bufio.NewReader(strings.NewReader("(x)")))
	require.Error(t, err)
}
