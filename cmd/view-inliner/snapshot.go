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

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-view-inliner/config"
	"github.com/dolthub/go-view-inliner/source"
)

// SnapshotCmd saves the views of a database for offline inlining.
type SnapshotCmd struct {
	Driver string `help:"Database driver (mysql or sqlite3)"`
	DSN    string `help:"Database connection string" name:"dsn"`
	Out    string `help:"Snapshot file to write" type:"path" required:""`
}

// Run executes the snapshot command.
func (cmd *SnapshotCmd) Run(app *Context) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	if cmd.Driver != "" || cmd.DSN != "" {
		cfg.Database = config.Database{Driver: cmd.Driver, DSN: cmd.DSN}
	}
	cfg.Snapshot = ""
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return config.ErrInvalidConfig.New("database dsn is required")
	}

	ctx := context.Background()
	db, err := source.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("unable to close database")
		}
	}()

	n, err := source.SaveSnapshot(ctx, cmd.Out, db)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("Saved %d views to %s\n", n, cmd.Out)
	return nil
}
