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
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-view-inliner/internal/similartext"
)

// ViewCatalog tells which names refer to views and hands out their definitions.
type ViewCatalog interface {
	// IsView reports whether the name refers to a view that can be inlined.
	IsView(name QualifiedName) bool
	// ViewDefinition returns the CREATE VIEW statement of the view.
	ViewDefinition(ctx context.Context, name QualifiedName) (string, error)
	// AddViewDefinition registers the definition of a view, replacing any previous one.
	AddViewDefinition(name QualifiedName, definition string)
}

// ViewSource is the backing store of a Catalog, usually a live database.
type ViewSource interface {
	// Views lists all views that can be inlined.
	Views(ctx context.Context) ([]QualifiedName, error)
	// Definition returns the CREATE VIEW statement of a view.
	Definition(ctx context.Context, name QualifiedName) (string, error)
}

// Catalog is a ViewCatalog seeded by hand, optionally backed by a ViewSource. Definitions fetched from the
// source are cached for the lifetime of the catalog. It is safe for concurrent use.
type Catalog struct {
	mutex       sync.RWMutex
	source      ViewSource
	views       map[string]QualifiedName
	definitions map[string]string
}

var _ ViewCatalog = (*Catalog)(nil)

// NewCatalog returns an empty catalog without a source.
func NewCatalog() *Catalog {
	return &Catalog{
		views:       make(map[string]QualifiedName),
		definitions: make(map[string]string),
	}
}

// NewCatalogFromSource returns a catalog that knows every view listed by the source and fetches their
// definitions on first use.
func NewCatalogFromSource(ctx context.Context, source ViewSource) (*Catalog, error) {
	names, err := source.Views(ctx)
	if err != nil {
		return nil, ErrViewSource.Wrap(err)
	}

	c := NewCatalog()
	c.source = source
	for _, name := range names {
		c.views[name.Key()] = name
	}

	logrus.WithField("views", len(names)).Debug("loaded view catalog")
	return c, nil
}

// IsView implements ViewCatalog.
func (c *Catalog) IsView(name QualifiedName) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, ok := c.views[name.Key()]
	return ok
}

// AddViewDefinition implements ViewCatalog.
func (c *Catalog) AddViewDefinition(name QualifiedName, definition string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := name.Key()
	c.views[key] = name
	c.definitions[key] = definition
}

// ViewDefinition implements ViewCatalog. Definitions coming from the source have any previously
// embedded original definition extracted, see StripOriginal.
func (c *Catalog) ViewDefinition(ctx context.Context, name QualifiedName) (string, error) {
	key := name.Key()

	c.mutex.RLock()
	definition, ok := c.definitions[key]
	source := c.source
	c.mutex.RUnlock()

	if ok {
		return definition, nil
	}

	if source == nil {
		return "", ErrViewNotFound.New(name, similartext.Find(c.Views(), name.String()))
	}

	logrus.WithField("view", name.String()).Debug("fetching view definition")
	definition, err := source.Definition(ctx, name)
	if err != nil {
		return "", ErrViewNotFound.Wrap(err, name, "")
	}
	definition = StripOriginal(definition)

	// Concurrent fetches of the same view store the same text, the last write wins.
	c.mutex.Lock()
	c.definitions[key] = definition
	c.mutex.Unlock()

	return definition, nil
}

// Views returns the canonical names of all known views, sorted.
func (c *Catalog) Views() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := make([]string, 0, len(c.views))
	for _, name := range c.views {
		names = append(names, name.String())
	}
	sort.Strings(names)

	return names
}
