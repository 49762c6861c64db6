//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package logging installs the process logger used through the framework's
// log package.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"trpc.group/trpc-go/trpc-agent-go/log"
)

// Formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options configures Setup.
type Options struct {
	Level  string
	Format string
	// Output defaults to stderr so that logs do not interleave with chat output.
	Output io.Writer
}

// New builds a sugared zap logger. Unknown levels fall back to info.
func New(opts Options) *zap.SugaredLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "lvl",
		NameKey:        "name",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var enc zapcore.Encoder
	if opts.Format == FormatJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	return zap.New(
		zapcore.NewCore(enc, zapcore.AddSync(out), zap.NewAtomicLevelAt(level)),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	).Sugar()
}

// Setup replaces log.Default. The level is fixed by opts.Level when the
// logger is built. The returned function flushes buffered entries.
func Setup(opts Options) func() {
	logger := New(opts)
	log.Default = logger
	return func() { _ = logger.Sync() }
}
