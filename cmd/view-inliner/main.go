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
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/go-view-inliner/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Context is shared by all commands.
type Context struct {
	Config  string
	Verbose bool
}

// loadConfig reads the configuration file and sets up logging from it.
func (c *Context) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
		cfg.Debug = true
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	return cfg, nil
}

// CLI is the command-line interface.
var CLI struct {
	Config   string      `help:"Configuration file path" default:"view-inliner.yaml" type:"path"`
	Verbose  bool        `help:"Log the inlining steps" short:"v"`
	Inline   InlineCmd   `cmd:"" help:"Inline the views referenced by a view definition"`
	Snapshot SnapshotCmd `cmd:"" help:"Save the view definitions of a database to a snapshot file"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Printf("view-inliner %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("view-inliner"),
		kong.Description("Inlines nested SQL views into a single view definition."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&Context{Config: CLI.Config, Verbose: CLI.Verbose})
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
