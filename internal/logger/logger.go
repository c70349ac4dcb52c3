// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds a
// named-logger factory used throughout go-conf-keeper.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Loggers are created through New and cached per name: asking twice for the
// same name returns the same instance, so no output is ever duplicated by
// repeated factory calls.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// timeLayout is the timestamp format emitted at the start of every line.
const timeLayout = "2006-01-02 15:04:05.000"

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

var (
	mu       sync.Mutex
	registry = make(map[string]*Logger)
)

// New returns the *Logger registered under name, creating it on first use.
//
// A fresh logger writes lines of the form
//
//	timestamp [name] <LEVEL> message
//
// to os.Stdout and emits every level down to Debug. Subsequent calls with the
// same name return the cached instance regardless of the options passed, so
// handler registration happens exactly once per name for the process
// lifetime.
func New(name string, opts ...Option) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}

	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	l := newLogger(name, settings)
	registry[name] = l
	return l
}

// Option customizes a logger at first registration.
type Option func(*settings)

// WithLevel sets the minimum emitted level. The default is Debug, the most
// verbose setting.
func WithLevel(level zerolog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput redirects log output away from os.Stdout. Intended for tests.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

type settings struct {
	level zerolog.Level
	out   io.Writer
}

func defaultSettings() settings {
	return settings{level: zerolog.DebugLevel, out: os.Stdout}
}

func newLogger(name string, s settings) *Logger {
	writer := zerolog.ConsoleWriter{
		Out:        s.out,
		NoColor:    true,
		TimeFormat: timeLayout,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			"logger",
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"logger"},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("<%s>", strings.ToUpper(fmt.Sprint(i)))
		},
		FormatPartValueByName: func(i interface{}, part string) string {
			if part == "logger" {
				return fmt.Sprintf("[%s]", i)
			}
			return fmt.Sprint(i)
		},
	}

	l := zerolog.New(writer).Level(s.level).With().
		Str("logger", name).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Reset drops all registered loggers. The next New call for any name builds a
// fresh instance. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]*Logger)
}
