package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level leveled logger used by the server and CLI.
// - backed by a zap SugaredLogger writing console lines to stdout
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = zap.New(newCore(zapcore.Lock(os.Stdout))).Sugar()
)

func newCore(ws zapcore.WriteSyncer) zapcore.Core {
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
}

// setCore swaps the output core and returns a func restoring the previous one.
func setCore(core zapcore.Core) func() {
	mu.Lock()
	defer mu.Unlock()
	orig := sugar
	sugar = zap.New(core).Sugar()
	return func() {
		mu.Lock()
		sugar = orig
		mu.Unlock()
	}
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

func Debugf(format string, v ...interface{}) { get().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { get().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { get().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { get().Errorf(format, v...) }

// Fatalf logs and exits with status 1.
func Fatalf(format string, v ...interface{}) { get().Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	get().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Sync flushes buffered output; call before exit.
func Sync() { _ = get().Sync() }

// LevelString returns the current level as text.
func LevelString() string {
	return level.Level().String()
}
