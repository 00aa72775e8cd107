// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a zap-backed logr.Logger writing to stderr. logr V(1)
// maps to zap's debug level.
func newLogger(level, format string) (logr.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	if format == "json" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}
