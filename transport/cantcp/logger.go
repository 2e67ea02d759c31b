package cantcp

import (
	"fmt"
	"log"
	"os"
)

// logger is the same leveled wrapper used by the uds package, duplicated
// here because this transport is an independent, importable package.
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

func (l *logger) Warningf(format string, args ...interface{}) {
	l.target.Printf("[%s] WARNING: %s", l.prefix, fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.target.Printf("[%s] ERROR: %s", l.prefix, fmt.Sprintf(format, args...))
}
