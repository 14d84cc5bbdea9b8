/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging is the logging facade of the SDK. Every package logs
// through a module logger; the output goes to the installed provider,
// modlog unless Initialize installs another one.
//
//  Basic Flow:
//  1) Optionally install a provider with Initialize
//  2) Create a module logger with NewLogger
//  3) Log; levels are set per module with SetLevel
package logging

import (
	"sort"
	"sync"

	"github.com/ibm-blockchain/ibc-go/pkg/core/logging/api"
	"github.com/ibm-blockchain/ibc-go/pkg/core/logging/modlog"
)

// Level is the severity of a log message
type Level int

// Log levels, from the most to the least severe
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

const loggerModule = "ibc/common"

var (
	providerOnce sync.Once
	provider     api.LoggerProvider

	modulesMutex sync.Mutex
	modules      = make(map[string]struct{})
)

// Logger logs for one module. The provider logger is resolved on first use,
// so package level loggers may be declared before Initialize is called.
type Logger struct {
	module   string
	once     sync.Once
	instance api.Logger
}

// NewLogger returns the logger of module and records the module name
func NewLogger(module string) *Logger {
	modulesMutex.Lock()
	modules[module] = struct{}{}
	modulesMutex.Unlock()
	return &Logger{module: module}
}

// Modules returns the names of the modules that created a logger, sorted
func Modules() []string {
	modulesMutex.Lock()
	defer modulesMutex.Unlock()
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initialize installs the logger provider. Only the first call, made before
// anything is logged, takes effect.
func Initialize(l api.LoggerProvider) {
	providerOnce.Do(func() {
		provider = l
		provider.GetLogger(loggerModule).Debug("Logger provider initialized")
	})
}

func loggerProvider() api.LoggerProvider {
	providerOnce.Do(func() {
		provider = modlog.LoggerProvider()
	})
	return provider
}

// SetLevel sets the level of module
func SetLevel(module string, level Level) {
	modlog.SetLevel(module, api.Level(level))
}

// GetLevel returns the level of module
func GetLevel(module string) Level {
	return Level(modlog.GetLevel(module))
}

// IsEnabledFor reports whether messages of level are logged for module
func IsEnabledFor(module string, level Level) bool {
	return modlog.IsEnabledFor(module, api.Level(level))
}

// LogLevel parses a level name such as "debug" or "WARNING"
func LogLevel(level string) (Level, error) {
	l, err := modlog.ParseLevel(level)
	return Level(l), err
}

// Debug logs at debug level
func (l *Logger) Debug(args ...interface{}) { l.logger().Debug(args...) }

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) { l.logger().Debugf(format, args...) }

// Info logs at info level
func (l *Logger) Info(args ...interface{}) { l.logger().Info(args...) }

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) { l.logger().Infof(format, args...) }

// Warn logs at warning level
func (l *Logger) Warn(args ...interface{}) { l.logger().Warn(args...) }

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...interface{}) { l.logger().Warnf(format, args...) }

// Error logs at error level
func (l *Logger) Error(args ...interface{}) { l.logger().Error(args...) }

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) { l.logger().Errorf(format, args...) }

func (l *Logger) logger() api.Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})
	return l.instance
}
