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

package inliner

import (
	"context"
	"strings"
	"time"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/dolthub/go-view-inliner/sql/analyzer"
)

// Config for the Inliner.
type Config struct {
	// Options of the inlining.
	Options analyzer.Options
	// Debug logs the steps of every run.
	Debug bool
	// Verbose prints the parsed views.
	Verbose bool
}

// Inliner inlines the views referenced by view definitions.
type Inliner struct {
	Catalog sql.ViewCatalog
	Config  Config
	now     func() time.Time
}

// New creates a new Inliner with the given catalog and config.
func New(c sql.ViewCatalog, cfg *Config) *Inliner {
	if cfg == nil {
		cfg = &Config{Options: analyzer.DefaultOptions()}
	}

	return &Inliner{Catalog: c, Config: *cfg, now: time.Now}
}

// NewDefault creates a new Inliner with the default options.
func NewDefault(c sql.ViewCatalog) *Inliner {
	return New(c, nil)
}

// Output is the outcome of inlining a view definition.
type Output struct {
	// View is the parsed view, nil when the definition could not be parsed.
	View *analyzer.View
	// SQL replaces the original definition. It is the definition itself when the view does not
	// reference other views.
	SQL             string
	Errors          []string
	Warnings        []string
	ColumnsStripped int
	JoinsStripped   int
	// Result is only set when views were inlined.
	Result *Result
}

// Inline parses the view definition and inlines every view it references.
func (i *Inliner) Inline(ctx context.Context, query string) *Output {
	start := i.now()
	logger := newRunLogger()

	span, ctx := opentracing.StartSpanFromContext(ctx, "inline_view")
	defer span.Finish()

	builder := analyzer.NewBuilder(i.Catalog).
		WithOptions(i.Config.Options).
		WithLogger(logger)
	if i.Config.Debug {
		builder = builder.WithDebug()
	}
	if i.Config.Verbose {
		builder = builder.WithVerbose()
	}
	a := builder.Build()

	view, err := a.ParseView(ctx, query)
	if err != nil {
		logger.WithError(err).Warn("unable to parse view definition")
		span.SetTag("error", true)
		return &Output{
			SQL:    failedParse(query, err),
			Errors: []string{err.Error()},
		}
	}

	logger = logger.WithField(ViewLogField, view.Name.String())
	span.SetTag("view", view.Name.String())

	if len(view.References.Views) == 0 {
		logger.Debug("view does not reference other views")
		return &Output{View: view, SQL: query}
	}

	report := a.Inline(ctx, view)
	converted := view.String()
	elapsed := i.now().Sub(start)

	result := newResult(start, elapsed, query, converted, report)

	logger.WithFields(map[string]interface{}{
		"elapsed":          elapsed,
		"columns_stripped": report.ColumnsStripped,
		"joins_stripped":   report.JoinsStripped,
		"warnings":         len(report.Warnings),
		"errors":           len(report.Errors),
	}).Info("view inlined")

	return &Output{
		View:            view,
		SQL:             result.SQL,
		Errors:          report.Errors,
		Warnings:        report.Warnings,
		ColumnsStripped: report.ColumnsStripped,
		JoinsStripped:   report.JoinsStripped,
		Result:          result,
	}
}

func failedParse(query string, err error) string {
	return "/*\nFailed parsing query:\n" + strings.TrimSpace(err.Error()) +
		"\n\nOriginal query was kept:\n*/" + query
}
