/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"strings"

	"github.com/ibm-blockchain/ibc-go/pkg/core/logging/api"
	"github.com/pkg/errors"
)

var levelNames = []string{
	"CRITICAL",
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
}

// defaultLogLevel applies to modules without an explicit level
const defaultLogLevel = api.INFO

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (api.Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return api.Level(i), nil
		}
	}
	return api.ERROR, errors.Errorf("logger: invalid log level [%s]", level)
}

// ParseString returns the string representation of the given level.
func ParseString(level api.Level) string {
	if level < api.CRITICAL || int(level) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[level]
}

// moduleLevels maintains log levels per module. Module "" holds the default.
type moduleLevels struct {
	levels map[string]api.Level
}

func (l *moduleLevels) getLevel(module string) api.Level {
	level, ok := l.levels[module]
	if !ok {
		level, ok = l.levels[""]
		if !ok {
			level = defaultLogLevel
		}
	}
	return level
}

func (l *moduleLevels) setLevel(module string, level api.Level) {
	if l.levels == nil {
		l.levels = make(map[string]api.Level)
	}
	l.levels[module] = level
}

func (l *moduleLevels) isEnabledFor(module string, level api.Level) bool {
	return level <= l.getLevel(module)
}
