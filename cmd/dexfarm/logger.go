// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/dexfarm/config"
	"github.com/ava-labs/dexfarm/consts"
)

// newLogger writes to stderr, keeping stdout for responses, and to a rotated
// file when a log directory is configured.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := cfg.GetLogLevel()
	if err != nil {
		return nil, err
	}
	var cores []logging.WrappedCore
	if cfg.LogToConsole {
		cores = append(cores, logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder()))
	}
	if len(cfg.LogDir) > 0 {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, consts.Name+".log"),
			MaxSize:    cfg.LogMaxSize,  // megabytes
			MaxBackups: cfg.LogMaxFiles, // files
			Compress:   cfg.LogCompress,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	if len(cores) == 0 {
		return logging.NoLog{}, nil
	}
	return logging.NewLogger("", cores...), nil
}
