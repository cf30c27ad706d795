// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/dexfarm/pebble"
	"github.com/ava-labs/dexfarm/server"
	"github.com/ava-labs/dexfarm/trace"
)

const (
	DefaultLogMaxSize  = 64
	DefaultLogMaxFiles = 8
)

// Config is the node configuration. It is read from YAML, and since JSON is
// a subset of YAML, from JSON too.
type Config struct {
	LogLevel     string `json:"logLevel" yaml:"logLevel"`
	LogDir       string `json:"logDir" yaml:"logDir"`
	LogMaxSize   int    `json:"logMaxSize" yaml:"logMaxSize"`
	LogMaxFiles  int    `json:"logMaxFiles" yaml:"logMaxFiles"`
	LogCompress  bool   `json:"logCompress" yaml:"logCompress"`
	LogToConsole bool   `json:"logToConsole" yaml:"logToConsole"`

	// An empty DatabaseDir keeps state in memory.
	DatabaseDir string        `json:"databaseDir" yaml:"databaseDir"`
	Pebble      pebble.Config `json:"pebble" yaml:"pebble"`

	// The API serves metrics and read-only queries.
	API   server.Config `json:"api" yaml:"api"`
	Trace trace.Config  `json:"trace" yaml:"trace"`

	// Number of state changes a block is expected to make.
	StateChangesHint int `json:"stateChangesHint" yaml:"stateChangesHint"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if _, err := c.GetLogLevel(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.LogLevel = logging.Info.String()
	c.LogMaxSize = DefaultLogMaxSize
	c.LogMaxFiles = DefaultLogMaxFiles
	c.LogToConsole = true
	c.Pebble = pebble.NewDefaultConfig()
	c.API = server.NewDefaultConfig()
	c.Trace = trace.Config{
		Enabled:         false,
		TraceSampleRate: 1,
		Endpoint:        trace.DefaultEndpoint,
		AppName:         "dexfarm",
	}
	c.StateChangesHint = 256
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}
