// Package logger provides the shared zap logger for the command binaries.
package logger

import "go.uber.org/zap"

// Log is the global zap logger.
var Log *zap.Logger

// Init configures the global logger. Development mode gets human-readable
// console output; otherwise production JSON.
func Init(development bool) {
	var err error
	if development {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
