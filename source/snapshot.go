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

package source

import (
	"context"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/go-view-inliner/sql"
)

const snapshotOpenTimeout = time.Second

var (
	viewsBucket = []byte("views")

	// ErrInvalidSnapshot is returned when a snapshot file has no views bucket.
	ErrInvalidSnapshot = errors.NewKind("invalid snapshot %s: no views bucket")
)

// Snapshot is a sql.ViewSource backed by a bolt file written with SaveSnapshot. Views are stored in a
// single bucket, keyed by their canonical name.
type Snapshot struct {
	path string
	db   *bolt.DB
}

var _ sql.ViewSource = (*Snapshot)(nil)

// SaveSnapshot copies every view of the source into a new bolt file at path and returns how many were
// written. Views whose definition cannot be read are skipped.
func SaveSnapshot(ctx context.Context, path string, src sql.ViewSource) (int, error) {
	names, err := src.Views(ctx)
	if err != nil {
		return 0, err
	}

	db, err := bolt.Open(path, 0640, &bolt.Options{Timeout: snapshotOpenTimeout})
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var written int
	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(viewsBucket) != nil {
			if err := tx.DeleteBucket(viewsBucket); err != nil {
				return err
			}
		}

		b, err := tx.CreateBucket(viewsBucket)
		if err != nil {
			return err
		}

		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}

			definition, err := src.Definition(ctx, name)
			if err != nil {
				logrus.WithField("view", name.String()).WithError(err).Warn("skipping view")
				continue
			}

			if err := b.Put([]byte(name.String()), []byte(definition)); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{"path": path, "views": written}).Info("snapshot saved")
	return written, nil
}

// OpenSnapshot opens a snapshot written by SaveSnapshot in read-only mode.
func OpenSnapshot(path string) (*Snapshot, error) {
	db, err := bolt.Open(path, 0640, &bolt.Options{Timeout: snapshotOpenTimeout, ReadOnly: true})
	if err != nil {
		return nil, err
	}

	err = db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(viewsBucket) == nil {
			return ErrInvalidSnapshot.New(path)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Snapshot{path: path, db: db}, nil
}

// Views implements sql.ViewSource.
func (s *Snapshot) Views(context.Context) ([]sql.QualifiedName, error) {
	var names []sql.QualifiedName
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(viewsBucket).ForEach(func(k, _ []byte) error {
			name, err := sql.ParseQualifiedName(string(k))
			if err != nil {
				return err
			}
			names = append(names, name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(names, func(i, j int) bool {
		return names[i].Key() < names[j].Key()
	})
	return names, nil
}

// Definition implements sql.ViewSource.
func (s *Snapshot) Definition(_ context.Context, name sql.QualifiedName) (string, error) {
	var definition string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(viewsBucket)

		if v := b.Get([]byte(name.String())); v != nil {
			definition = string(v)
			return nil
		}

		// Keys keep the case of the source, fall back to a case-insensitive scan.
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			stored, err := sql.ParseQualifiedName(string(k))
			if err == nil && stored.Equal(name) {
				definition = string(v)
				return nil
			}
		}

		return ErrDefinitionNotFound.New(name)
	})

	return definition, err
}

// Close releases the snapshot file.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
