// Package logger builds the zap logger shared by the commands.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger on stderr at Info level, or Debug level when debug is set.
func New(debug bool) *zap.Logger {
	return NewWithSyncer(debug, zapcore.Lock(os.Stderr))
}

// NewWithSyncer is New writing to ws.
func NewWithSyncer(debug bool, ws zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), ws, level)
	return zap.New(core, zap.AddCaller())
}
