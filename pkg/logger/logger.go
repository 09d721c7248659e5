package logger

import (
	"os"

	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// Init builds the process logger. Development gets a human readable console
// encoder at debug level, everything else gets JSON at info level.
func Init(environment string) {
	var (
		base *zap.Logger
		err  error
	)

	if environment == "development" {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		// keep the no-op logger rather than crash on a logger misconfig
		return
	}

	log = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Debug(msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
	_ = log.Sync()
	os.Exit(1)
}

// Sync flushes buffered entries, call it before the process exits.
func Sync() {
	_ = log.Sync()
}
