// Package logger builds the zap loggers used across the jigyasa service and CLI.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	level   zapcore.Level
	json    bool
	caller  bool
	writers []io.Writer
}

// Option configures a logger created with New.
type Option func(*config)

// WithDebug sets the level to Debug when true, Info otherwise.
func WithDebug(debug bool) Option {
	return func(c *config) {
		if debug {
			c.level = zapcore.DebugLevel
		} else {
			c.level = zapcore.InfoLevel
		}
	}
}

// WithJSON switches from the coloured console encoder to zap's JSON encoder
// for log shippers.
func WithJSON(json bool) Option {
	return func(c *config) {
		c.json = json
	}
}

// WithWriters sets the output writers. Defaults to os.Stdout.
func WithWriters(w ...io.Writer) Option {
	return func(c *config) {
		c.writers = w
	}
}

// WithCaller toggles file:line annotations. On by default.
func WithCaller(caller bool) Option {
	return func(c *config) {
		c.caller = caller
	}
}

// New builds a logger from the given options.
func New(opts ...Option) *zap.Logger {
	c := &config{level: zapcore.InfoLevel, caller: true}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.writers) == 0 {
		c.writers = []io.Writer{os.Stdout}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if c.json {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(c.writers))
	for _, w := range c.writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), c.level)
	if !c.caller {
		return zap.New(core)
	}
	return zap.New(core, zap.AddCaller())
}

func NewLogger(debug bool) *zap.Logger {
	return New(WithDebug(debug))
}

func NewLoggerWithWriters(debug bool, writers ...io.Writer) *zap.Logger {
	return New(WithDebug(debug), WithWriters(writers...))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
