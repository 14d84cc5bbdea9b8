/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package modlog is the default logger implementation: one standard library
// logger per module with module-scoped levels.
package modlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ibm-blockchain/ibc-go/pkg/core/logging/api"
)

var rwmutex = &sync.RWMutex{}
var levels = &moduleLevels{}

const (
	logLevelFormatter  = "UTC -> %4.4s "
	logPrefixFormatter = " [%s] "
)

// Provider is the default logger implementation
type Provider struct {
	output io.Writer
}

//GetLogger returns SDK logger implementation
func (p *Provider) GetLogger(module string) api.Logger {
	out := p.output
	if out == nil {
		out = os.Stdout
	}
	deflogger := log.New(out, fmt.Sprintf(logPrefixFormatter, module), log.Ldate|log.Ltime|log.LUTC)
	return &Log{deflogger: deflogger, module: module}
}

//LoggerProvider returns logging provider for SDK logger
func LoggerProvider() api.LoggerProvider {
	return &Provider{}
}

// LoggerProviderWithOutput returns a provider whose loggers write to output
func LoggerProviderWithOutput(output io.Writer) api.LoggerProvider {
	return &Provider{output: output}
}

//SetLevel - setting log level for given module
func SetLevel(module string, level api.Level) {
	rwmutex.Lock()
	defer rwmutex.Unlock()
	levels.setLevel(module, level)
}

//GetLevel - getting log level for given module
func GetLevel(module string) api.Level {
	rwmutex.RLock()
	defer rwmutex.RUnlock()
	return levels.getLevel(module)
}

//IsEnabledFor - Check if given log level is enabled for given module
func IsEnabledFor(module string, level api.Level) bool {
	rwmutex.RLock()
	defer rwmutex.RUnlock()
	return levels.isEnabledFor(module, level)
}

//Log is a standard SDK logger implementation
type Log struct {
	deflogger *log.Logger
	module    string
}

// Debug calls go log.Output.
func (l *Log) Debug(args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprint(args...))
}

// Debugf calls go log.Output.
func (l *Log) Debugf(format string, args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprintf(format, args...))
}

// Info calls go log.Output.
func (l *Log) Info(args ...interface{}) {
	l.log(api.INFO, fmt.Sprint(args...))
}

// Infof calls go log.Output.
func (l *Log) Infof(format string, args ...interface{}) {
	l.log(api.INFO, fmt.Sprintf(format, args...))
}

// Warn calls go log.Output.
func (l *Log) Warn(args ...interface{}) {
	l.log(api.WARNING, fmt.Sprint(args...))
}

// Warnf calls go log.Output.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.log(api.WARNING, fmt.Sprintf(format, args...))
}

// Error calls go log.Output.
func (l *Log) Error(args ...interface{}) {
	l.log(api.ERROR, fmt.Sprint(args...))
}

// Errorf calls go log.Output.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.log(api.ERROR, fmt.Sprintf(format, args...))
}

//ChangeOutput for changing output destination for the logger.
func (l *Log) ChangeOutput(output io.Writer) {
	l.deflogger.SetOutput(output)
}

func (l *Log) log(level api.Level, msg string) {
	if !IsEnabledFor(l.module, level) {
		return
	}
	err := l.deflogger.Output(3, fmt.Sprintf(logLevelFormatter, ParseString(level))+msg)
	if err != nil {
		fmt.Printf("error from deflogger.Output %v\n", err)
	}
}
