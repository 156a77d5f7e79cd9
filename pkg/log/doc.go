// Package log provides a logging abstraction for contactbook components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Implementations are provided for zerolog and
// a no-op logger for tests.
//
// # Usage
//
// Use the zerolog adapter on stderr at a given level:
//
//	logger := log.NewZerologAdapter(log.LevelInfo)
//
// Or wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
package log
