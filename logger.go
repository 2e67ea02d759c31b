package uds

import (
	"fmt"
	"log"
	"os"
)

// logger wraps a *log.Logger with leveled helpers, matching the logging
// idiom used throughout the modbus client/transport lineage this package
// grew out of. A nil customLogger falls back to a stderr logger tagged with
// prefix.
type logger struct {
	prefix string
	target *log.Logger
}

func newLogger(prefix string, customLogger *log.Logger) *logger {
	if customLogger != nil {
		return &logger{prefix: prefix, target: customLogger}
	}
	return &logger{
		prefix: prefix,
		target: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.target.Printf("[%s] ERROR: %s", l.prefix, fmt.Sprintf(format, args...))
}

func (l *logger) Error(msg string) {
	l.target.Printf("[%s] ERROR: %s", l.prefix, msg)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.target.Printf("[%s] WARNING: %s", l.prefix, fmt.Sprintf(format, args...))
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.target.Printf("[%s] DEBUG: %s", l.prefix, fmt.Sprintf(format, args...))
}
