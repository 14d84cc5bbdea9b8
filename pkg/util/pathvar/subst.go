/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pathvar expands ${VAR} references in configured file system paths.
package pathvar

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
)

const (
	varPrefix = "${"
	varSuffix = "}"
)

// Subst replaces every ${NAME} in path with the value of the variable.
// GOPATH and TEMP are resolved locally, any other name from the environment.
// References to unknown variables are left as they are.
func Subst(path string) string {
	var b strings.Builder

	for {
		start := strings.Index(path, varPrefix)
		if start == -1 {
			break
		}
		end := strings.Index(path[start:], varSuffix)
		if end == -1 {
			break
		}
		end += start

		b.WriteString(path[:start])
		if value, ok := lookupVar(path[start+len(varPrefix) : end]); ok {
			b.WriteString(value)
		} else {
			b.WriteString(path[start : end+len(varSuffix)])
		}
		path = path[end+len(varSuffix):]
	}
	b.WriteString(path)

	return b.String()
}

func lookupVar(name string) (string, bool) {
	switch name {
	case "GOPATH":
		return filepath.SplitList(build.Default.GOPATH)[0], true
	case "TEMP":
		return os.TempDir(), true
	}
	return os.LookupEnv(name)
}
