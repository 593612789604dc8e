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

package config

import (
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/go-view-inliner/sql/analyzer"
)

// EnvPrefix is the prefix of the environment variables overriding the configuration file.
const EnvPrefix = "VIEW_INLINER_"

var (
	// ErrInvalidConfig is returned when the configuration cannot be loaded or is inconsistent.
	ErrInvalidConfig = errors.NewKind("invalid configuration: %s")

	drivers = map[string]struct{}{"mysql": {}, "sqlite3": {}}
)

// Database identifies the live database views are read from.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Config of the view inliner.
type Config struct {
	StripUnusedColumns    bool     `yaml:"strip_unused_columns"`
	StripUnusedJoins      bool     `yaml:"strip_unused_joins"`
	GenerateCreateOrAlter bool     `yaml:"generate_create_or_alter"`
	LogLevel              string   `yaml:"log_level"`
	Debug                 bool     `yaml:"debug"`
	Database              Database `yaml:"database"`
	// Snapshot is the path of a bolt snapshot used instead of a live database.
	Snapshot string `yaml:"snapshot"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		StripUnusedColumns:    true,
		GenerateCreateOrAlter: true,
		LogLevel:              logrus.InfoLevel.String(),
	}
}

// Load reads the YAML file at path on top of the defaults and applies the environment overrides. An
// empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := ioutil.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			logrus.WithField("path", path).Debug("configuration file not found, using defaults")
		case err != nil:
			return nil, ErrInvalidConfig.Wrap(err, path)
		default:
			if err := yaml.UnmarshalStrict(data, c); err != nil {
				return nil, ErrInvalidConfig.Wrap(err, path)
			}
		}
	}

	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ApplyEnv overrides the configuration with the VIEW_INLINER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	bools := map[string]*bool{
		"STRIP_UNUSED_COLUMNS":     &c.StripUnusedColumns,
		"STRIP_UNUSED_JOINS":       &c.StripUnusedJoins,
		"GENERATE_CREATE_OR_ALTER": &c.GenerateCreateOrAlter,
		"DEBUG":                    &c.Debug,
	}
	texts := map[string]*string{
		"LOG_LEVEL": &c.LogLevel,
		"DRIVER":    &c.Database.Driver,
		"DSN":       &c.Database.DSN,
		"SNAPSHOT":  &c.Snapshot,
	}

	for name, field := range bools {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}

		b, err := cast.ToBoolE(value)
		if err != nil {
			return ErrInvalidConfig.Wrap(err, EnvPrefix+name)
		}
		*field = b
	}

	for name, field := range texts {
		if value, ok := lookup(EnvPrefix + name); ok {
			*field = cast.ToString(value)
		}
	}

	return nil
}

// Validate checks the configuration is consistent.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return ErrInvalidConfig.Wrap(err, "log_level")
	}

	db := c.Database
	if db.Driver != "" || db.DSN != "" {
		if _, ok := drivers[db.Driver]; !ok {
			return ErrInvalidConfig.New("unsupported database driver " + db.Driver)
		}

		if db.DSN == "" {
			return ErrInvalidConfig.New("database dsn is required")
		}

		if c.Snapshot != "" {
			return ErrInvalidConfig.New("database and snapshot are mutually exclusive")
		}
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// Options returns the inlining options.
func (c *Config) Options() analyzer.Options {
	return analyzer.Options{
		StripUnusedColumns: c.StripUnusedColumns,
		StripUnusedJoins:   c.StripUnusedJoins,
	}
}
