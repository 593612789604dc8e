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

package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	inliner "github.com/dolthub/go-view-inliner"
	"github.com/dolthub/go-view-inliner/config"
	"github.com/dolthub/go-view-inliner/source"
	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/parse"
)

// ErrNoView is returned when neither a view name nor a view file is given.
var ErrNoView = errors.NewKind("one of --view-name or --view-path is required")

// InlineCmd inlines a single view.
type InlineCmd struct {
	Driver   string `help:"Database driver (mysql or sqlite3)"`
	DSN      string `help:"Database connection string" name:"dsn"`
	Snapshot string `help:"Snapshot file to read views from instead of a database" type:"path"`

	ViewName string `help:"Name of the view to read from the database" xor:"view"`
	ViewPath string `help:"File holding the view definition" type:"existingfile" xor:"view"`

	StripUnusedColumns    *bool `help:"Remove the columns of inlined views that are never read" negatable:""`
	StripUnusedJoins      *bool `help:"Remove joined views and tables that only provide their join column" negatable:""`
	GenerateCreateOrAlter *bool `help:"Emit CREATE OR ALTER VIEW" negatable:""`

	OutputPath string `help:"File to write the inlined view to, stdout when empty" type:"path"`
	LogPath    string `help:"File to write the inlining report to" type:"path"`
}

// apply overrides the configuration with the flags given on the command line.
func (cmd *InlineCmd) apply(cfg *config.Config) {
	if cmd.Driver != "" || cmd.DSN != "" {
		cfg.Database = config.Database{Driver: cmd.Driver, DSN: cmd.DSN}
		cfg.Snapshot = ""
	}
	if cmd.Snapshot != "" {
		cfg.Snapshot = cmd.Snapshot
		cfg.Database = config.Database{}
	}
	if cmd.StripUnusedColumns != nil {
		cfg.StripUnusedColumns = *cmd.StripUnusedColumns
	}
	if cmd.StripUnusedJoins != nil {
		cfg.StripUnusedJoins = *cmd.StripUnusedJoins
	}
	if cmd.GenerateCreateOrAlter != nil {
		cfg.GenerateCreateOrAlter = *cmd.GenerateCreateOrAlter
	}
}

// Run executes the inline command.
func (cmd *InlineCmd) Run(app *Context) error {
	if cmd.ViewName == "" && cmd.ViewPath == "" {
		return ErrNoView.New()
	}

	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	cmd.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	catalog, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCatalog(); err != nil {
			logrus.WithError(err).Warn("unable to close view source")
		}
	}()

	definition, err := cmd.definition(ctx, catalog)
	if err != nil {
		return err
	}

	if cfg.GenerateCreateOrAlter {
		definition = parse.CreateOrAlter(definition)
	}

	i := inliner.New(catalog, &inliner.Config{Options: cfg.Options(), Debug: cfg.Debug})
	out := i.Inline(ctx, definition)

	if err := writeOutput(cmd.OutputPath, out.SQL); err != nil {
		return err
	}

	if cmd.LogPath != "" {
		if err := ioutil.WriteFile(cmd.LogPath, []byte(report(out)), 0644); err != nil {
			return err
		}
	}

	printSummary(out)
	return nil
}

func (cmd *InlineCmd) definition(ctx context.Context, catalog sql.ViewCatalog) (string, error) {
	if cmd.ViewPath != "" {
		data, err := ioutil.ReadFile(cmd.ViewPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	name, err := sql.ParseQualifiedName(cmd.ViewName)
	if err != nil {
		return "", err
	}

	return catalog.ViewDefinition(ctx, name)
}

// openCatalog returns the catalog of the configured snapshot or database, or an empty one.
func openCatalog(ctx context.Context, cfg *config.Config) (*sql.Catalog, func() error, error) {
	var (
		src     sql.ViewSource
		closeFn func() error
	)

	switch {
	case cfg.Snapshot != "":
		s, err := source.OpenSnapshot(cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		src, closeFn = s, s.Close
	case cfg.Database.DSN != "":
		db, err := source.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		src, closeFn = db, db.Close
	default:
		return sql.NewCatalog(), func() error { return nil }, nil
	}

	catalog, err := sql.NewCatalogFromSource(ctx, src)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	return catalog, closeFn, nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	return ioutil.WriteFile(path, []byte(content), 0644)
}

// report renders the log file of an inlining run.
func report(out *inliner.Output) string {
	var sb strings.Builder

	if out.Result != nil {
		fmt.Fprintf(&sb, "Elapsed: %s\n", out.Result.Elapsed)
	}
	fmt.Fprintf(&sb, "Columns stripped: %d\n", out.ColumnsStripped)
	fmt.Fprintf(&sb, "Joins stripped: %d\n", out.JoinsStripped)
	fmt.Fprintf(&sb, "\nWarnings (%d):\n", len(out.Warnings))
	for _, w := range out.Warnings {
		sb.WriteString(w + "\n")
	}
	fmt.Fprintf(&sb, "\nErrors (%d):\n", len(out.Errors))
	for _, e := range out.Errors {
		sb.WriteString(e + "\n")
	}

	return sb.String()
}

func printSummary(out *inliner.Output) {
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, w := range out.Warnings {
		yellow.Fprintln(os.Stderr, w)
	}
	for _, e := range out.Errors {
		red.Fprintln(os.Stderr, e)
	}

	switch {
	case out.Result == nil && len(out.Errors) == 0:
		color.New(color.FgCyan).Fprintln(os.Stderr, "No views to inline")
	case len(out.Errors) == 0:
		color.New(color.FgGreen).Fprintf(os.Stderr,
			"Inlined %d views in %s, removed %d columns and %d joins\n",
			len(out.Result.KnownViews)-1, out.Result.Elapsed, out.ColumnsStripped, out.JoinsStripped)
	}
}
