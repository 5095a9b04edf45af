// Package logger provides structured logging for the desktop host using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.WithComponent("bootstrap")
//	log.Info("backend ready", logger.Fields("port", 4242))
package logger
