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

import (
	"fmt"
	"os"
	"strings"

	"github.com/dolthub/go-view-inliner/sql"
	"github.com/sirupsen/logrus"
)

const debugInlinerKey = "DEBUG_INLINER"

// Builder provides an easy way to generate an Analyzer with custom options.
type Builder struct {
	catalog sql.ViewCatalog
	options Options
	logger  *logrus.Entry
	debug   bool
	verbose bool
}

// NewBuilder creates a new Builder from a specific catalog.
func NewBuilder(c sql.ViewCatalog) *Builder {
	return &Builder{catalog: c, options: DefaultOptions()}
}

// WithOptions sets the inlining options.
func (ab *Builder) WithOptions(options Options) *Builder {
	ab.options = options
	return ab
}

// WithLogger sets the entry debug messages are logged with.
func (ab *Builder) WithLogger(logger *logrus.Entry) *Builder {
	ab.logger = logger
	return ab
}

// WithDebug activates debug on the Analyzer.
func (ab *Builder) WithDebug() *Builder {
	ab.debug = true
	return ab
}

// WithVerbose makes the Analyzer print the views it works on.
func (ab *Builder) WithVerbose() *Builder {
	ab.verbose = true
	return ab
}

// Build creates a new Analyzer using all previous data set to the Builder.
func (ab *Builder) Build() *Analyzer {
	_, debug := os.LookupEnv(debugInlinerKey)

	logger := ab.logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Analyzer{
		Debug:    debug || ab.debug,
		Verbose:  ab.verbose,
		debugCtx: make([]string, 0),
		logger:   logger,
		Catalog:  ab.catalog,
		Options:  ab.options,
	}
}

// Analyzer analyzes view definitions and inlines the views they reference. An Analyzer keeps
// state while it runs and must not be shared between concurrent runs.
type Analyzer struct {
	// Whether to log various debugging messages
	Debug bool
	// Whether to output the views at each step of the analyzer
	Verbose  bool
	debugCtx []string
	logger   *logrus.Entry
	// Catalog of views that can be inlined.
	Catalog sql.ViewCatalog
	// Options of the inlining.
	Options Options
}

// NewDefault creates a default Analyzer instance with the default options.
func NewDefault(c sql.ViewCatalog) *Analyzer {
	return NewBuilder(c).Build()
}

// Log prints an INFO message with the given message and args if the analyzer is in debug mode.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a != nil && a.Debug {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			a.logger.Infof("%s: "+msg, append([]interface{}{ctx}, args...)...)
		} else {
			a.logger.Infof(msg, args...)
		}
	}
}

// LogView prints the given view if Verbose logging is enabled.
func (a *Analyzer) LogView(v *View) {
	if a != nil && v != nil && a.Verbose {
		if len(a.debugCtx) > 0 {
			ctx := strings.Join(a.debugCtx, "/")
			fmt.Printf("%s: %s", ctx, v.DebugString())
		} else {
			fmt.Printf("%s", v.DebugString())
		}
	}
}

// PushDebugContext pushes the given context string onto the context stack, to use when logging debug messages.
func (a *Analyzer) PushDebugContext(msg string) {
	if a != nil {
		a.debugCtx = append(a.debugCtx, msg)
	}
}

// PopDebugContext pops a context message off the context stack.
func (a *Analyzer) PopDebugContext() {
	if a != nil && len(a.debugCtx) > 0 {
		a.debugCtx = a.debugCtx[:len(a.debugCtx)-1]
	}
}
