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
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"unicode"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrUnexpectedSyntax is returned when the view header does not have the expected shape.
var ErrUnexpectedSyntax = errors.NewKind("expecting %q but got %q instead")

type parseFunc func(*bufio.Reader) error

type parseFuncs []parseFunc

func (f parseFuncs) exec(r *bufio.Reader) error {
	for _, fn := range f {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func expectRune(expected rune) parseFunc {
	return func(rd *bufio.Reader) error {
		r, _, err := rd.ReadRune()
		if err != nil {
			return err
		}

		if r != expected {
			return ErrUnexpectedSyntax.New(string(expected), string(r))
		}

		return nil
	}
}

func expect(expected string) parseFunc {
	return func(r *bufio.Reader) error {
		var ident string

		if err := readIdent(&ident)(r); err != nil {
			return err
		}

		if ident == expected {
			return nil
		}

		return ErrUnexpectedSyntax.New(expected, ident)
	}
}

// skipSpaces skips white space as well as -- and /* */ comments.
func skipSpaces(r *bufio.Reader) error {
	for {
		bs, err := r.Peek(2)
		if len(bs) == 0 {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch {
		case len(bs) == 2 && bs[0] == '-' && bs[1] == '-':
			if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
				return err
			}
		case len(bs) == 2 && bs[0] == '/' && bs[1] == '*':
			if err := skipBlockComment(r); err != nil {
				return err
			}
		default:
			ru, _, err := r.ReadRune()
			if err != nil {
				return err
			}

			if !unicode.IsSpace(ru) {
				return r.UnreadRune()
			}
		}
	}
}

func skipBlockComment(r *bufio.Reader) error {
	if _, err := r.Discard(2); err != nil {
		return err
	}

	var prev byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if prev == '*' && b == '/' {
			return nil
		}
		prev = b
	}
}

// maybe consumes keyword if it is the next word of the reader and reports whether it did.
func maybe(matched *bool, keyword string) parseFunc {
	return func(rd *bufio.Reader) error {
		*matched = false

		bs, err := rd.Peek(len(keyword) + 1)
		if err != nil && err != io.EOF {
			return err
		}

		if len(bs) < len(keyword) || !strings.EqualFold(string(bs[:len(keyword)]), keyword) {
			return nil
		}

		if len(bs) > len(keyword) && isIdentByte(bs[len(keyword)]) {
			return nil
		}

		*matched = true
		_, err = rd.Discard(len(keyword))
		return err
	}
}

func readLetter(r *bufio.Reader, buf *bytes.Buffer) error {
	ru, _, err := r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return nil
		}

		return err
	}

	if !isIdentRune(ru) {
		return r.UnreadRune()
	}

	buf.WriteRune(ru)
	return nil
}

func readValidIdentRune(r *bufio.Reader, buf *bytes.Buffer) error {
	ru, _, err := r.ReadRune()
	if err != nil {
		return err
	}

	if !isIdentRune(ru) {
		if err := r.UnreadRune(); err != nil {
			return err
		}
		return io.EOF
	}

	buf.WriteRune(ru)
	return nil
}

func isIdentRune(ru rune) bool {
	return unicode.IsLetter(ru) || unicode.IsDigit(ru) || ru == '_' || ru == '$' || ru == '#' || ru == '@'
}

func isIdentByte(b byte) bool {
	return b >= 0x80 || isIdentRune(rune(b))
}

// readIdent reads a keyword, lower-cased.
func readIdent(ident *string) parseFunc {
	return func(r *bufio.Reader) error {
		var name string
		if err := readBareName(&name)(r); err != nil {
			return err
		}

		*ident = strings.ToLower(name)
		return nil
	}
}

func readBareName(name *string) parseFunc {
	return func(r *bufio.Reader) error {
		var buf bytes.Buffer
		if err := readLetter(r, &buf); err != nil {
			return err
		}

		for {
			if err := readValidIdentRune(r, &buf); err == io.EOF {
				break
			} else if err != nil {
				return err
			}
		}

		*name = buf.String()
		return nil
	}
}

// readName reads an identifier preserving its case. Backtick quoted identifiers are unquoted.
func readName(name *string) parseFunc {
	return func(r *bufio.Reader) error {
		next, err := r.Peek(1)
		if err != nil {
			return err
		}

		if next[0] != '`' {
			return readBareName(name)(r)
		}

		if _, err := r.Discard(1); err != nil {
			return err
		}

		var buf bytes.Buffer
		for {
			b, err := r.ReadByte()
			if err == io.EOF {
				return ErrUnexpectedSyntax.New("`", "EOF")
			}

			if err != nil {
				return err
			}

			if b == '`' {
				if next, err := r.Peek(1); err == nil && next[0] == '`' {
					_, _ = r.Discard(1)
				} else {
					break
				}
			}

			buf.WriteByte(b)
		}

		*name = buf.String()
		return nil
	}
}

// readQualifiedName reads a dotted name such as db.schema.name into its parts.
func readQualifiedName(parts *[]string) parseFunc {
	return func(r *bufio.Reader) error {
		for {
			var part string
			if err := readName(&part)(r); err != nil {
				return err
			}

			if part == "" {
				return ErrUnexpectedSyntax.New("identifier", "")
			}
			*parts = append(*parts, part)

			var dot bool
			if err := (parseFuncs{skipSpaces, maybeRune(&dot, '.'), skipSpaces}).exec(r); err != nil {
				return err
			}

			if !dot {
				return nil
			}
		}
	}
}

func maybeRune(matched *bool, expected rune) parseFunc {
	return func(rd *bufio.Reader) error {
		*matched = false

		r, _, err := rd.ReadRune()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if r != expected {
			return rd.UnreadRune()
		}

		*matched = true
		return nil
	}
}

// maybeList reads an optional list delimited by opening and closing runes, such as the column
// list of a view.
func maybeList(opening, separator, closing rune, list *[]string) parseFunc {
	return func(rd *bufio.Reader) error {
		var open bool
		if err := maybeRune(&open, opening)(rd); err != nil || !open {
			return err
		}

		for {
			var (
				item  string
				close bool
			)

			err := parseFuncs{
				skipSpaces,
				readName(&item),
				skipSpaces,
				maybeRune(&close, closing),
			}.exec(rd)
			if err != nil {
				return err
			}

			if item == "" {
				return ErrUnexpectedSyntax.New("identifier", "")
			}
			*list = append(*list, item)

			if close {
				return nil
			}

			if err := expectRune(separator)(rd); err != nil {
				return err
			}
		}
	}
}

func oneOf(selected *string, options ...string) parseFunc {
	return func(r *bufio.Reader) error {
		var ident string
		if err := readIdent(&ident)(r); err != nil {
			return err
		}

		for _, opt := range options {
			if strings.ToLower(opt) == ident {
				*selected = ident
				return nil
			}
		}

		return ErrUnexpectedSyntax.New(
			fmt.Sprintf("one of: %s", strings.Join(options, ", ")),
			ident,
		)
	}
}

func readRemaining(val *string) parseFunc {
	return func(r *bufio.Reader) error {
		bytes, err := ioutil.ReadAll(r)
		if err != nil {
			return err
		}

		*val = string(bytes)
		return nil
	}
}
