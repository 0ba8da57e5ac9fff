// SPDX-License-Identifier: MIT
//
// Copyright (C) 2020-2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package cmd

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A LoggerConfig contains the running environment, either "development" or "production", the path of a file to
// also write the logging output to, and an option to explicitly enable stacktrace output.
type LoggerConfig struct {
	Environment      string `toml:"env"`
	Path             string `toml:"path,omitempty"`
	EnableStacktrace bool   `toml:"enable_stacktrace,omitempty"`
}

func (c *LoggerConfig) valid() bool {
	return c != nil && (c.development() || strings.EqualFold(c.Environment, "production"))
}

func (c *LoggerConfig) development() bool {
	return strings.EqualFold(c.Environment, "development")
}

// NewLogger builds a human-friendly console logger writing to stderr and to the file specified in conf.
// It logs at DebugLevel in development and at InfoLevel in production.
func NewLogger(conf *LoggerConfig) (*zap.SugaredLogger, error) {
	if !conf.valid() {
		return nil, errNoEnvironment
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if conf.development() {
		level.SetLevel(zap.DebugLevel)
	}

	outputs := []string{"stderr"}
	if conf.Path != "" {
		outputs = append(outputs, conf.Path)
	}

	zConfig := &zap.Config{
		Level:             level,
		Encoding:          "console",
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
