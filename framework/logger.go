package framework

import (
	"fmt"
	"io"
)

// Logger is a minimal logging interface. It is deliberately compatible with
// the standard library's *log.Logger so callers can pass one directly.
type Logger interface {
	Println(args ...interface{})
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Println(args ...interface{})                {}
func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// OrNull substitutes a NullLogger for a nil Logger, so components can accept
// nil without checking at every call site.
func OrNull(logger Logger) Logger {
	if logger == nil {
		return NullLogger()
	}
	return logger
}

type writerLogger struct {
	w io.Writer
}

// WriterLogger returns a Logger that writes each message as one line to w.
func WriterLogger(w io.Writer) Logger { return writerLogger{w} }

func (l writerLogger) Println(args ...interface{}) {
	fmt.Fprintln(l.w, args...)
}

func (l writerLogger) Printf(message string, args ...interface{}) {
	fmt.Fprintf(l.w, message+"\n", args...)
}

type prefixedLogger struct {
	base   Logger
	prefix string
}

// LoggerWithPrefix returns a Logger that prepends a fixed prefix to every
// message before delegating to baseLogger.
func LoggerWithPrefix(baseLogger Logger, prefix string) Logger {
	return prefixedLogger{baseLogger, prefix}
}

func (p prefixedLogger) Println(args ...interface{}) {
	p.base.Println(append([]interface{}{p.prefix}, args...)...)
}

func (p prefixedLogger) Printf(message string, args ...interface{}) {
	p.base.Printf(p.prefix+message, args...)
}
