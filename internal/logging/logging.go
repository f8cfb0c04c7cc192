// Copyright 2019-2024 go-sccp authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

// Package logging wraps zerolog with lumberjack-backed rotation, one child
// logger per protocol component (m3ua, sccp, tcap, map, smpp, routing,
// ussd).
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration, matching the sigtrand.yaml `logging:` block.
type Config struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "json" or "console"
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Logger wraps a zerolog.Logger.
type Logger struct {
	logger zerolog.Logger
}

var (
	global     *Logger
	globalOnce sync.Once
)

// Init initializes the process-wide logger exactly once.
func Init(cfg Config) error {
	var err error
	globalOnce.Do(func() {
		global, err = New(cfg)
	})
	return err
}

// New creates a standalone Logger instance.
func New(cfg Config) (*Logger, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, err
		}
	}

	var writer io.Writer = os.Stdout
	if cfg.Path != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	var zlog zerolog.Logger
	if cfg.Format == "console" {
		zlog = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		zlog = zerolog.New(writer).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return &Logger{logger: zlog.Level(level)}, nil
}

// Get returns the process-wide logger, falling back to a bare stdout logger
// if Init was never called (useful in tests).
func Get() *Logger {
	if global == nil {
		return &Logger{logger: zerolog.New(os.Stdout).With().Timestamp().Logger()}
	}
	return global
}

// Component returns a child logger tagged with the given component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{logger: l.logger.With().Str("component", name).Logger()}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.event(l.logger.Debug(), msg, fields) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...interface{}) { l.event(l.logger.Info(), msg, fields) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.event(l.logger.Warn(), msg, fields) }

// Error logs at error level with an attached error value.
func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	l.event(l.logger.Error().Err(err), msg, fields)
}

func (l *Logger) event(ev *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}
