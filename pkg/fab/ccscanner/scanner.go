/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ccscanner discovers the operations a chaincode dispatches by
// scanning its Go source text.
package ccscanner

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/fab")

// SourceFile is a named chaincode source text
type SourceFile struct {
	Name    string
	Content string
}

// Result is the outcome of a scan
type Result struct {
	// File is the name of the file holding the entry point
	File string
	// Receiver is the receiver variable of the entry point
	Receiver string
	// Operations are the dispatched operation names in order of first occurrence
	Operations []string
}

// Scanner locates the entry point among source files
type Scanner struct {
	discoverer Discoverer
}

// New returns a scanner using the given discoverer
func New(discoverer Discoverer) *Scanner {
	return &Scanner{discoverer: discoverer}
}

// Scan scans the first file holding an entry point. Later files are ignored.
func (s *Scanner) Scan(files []SourceFile) (*Result, error) {
	for _, f := range files {
		receiver, names, err := s.discoverer.Discover(f.Content)
		if errors.Cause(err) == ErrNoEntryPoint {
			continue
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "scanning %s failed", f.Name)
		}

		if len(names) == 0 {
			return nil, status.Newf(status.NoOperationsFound, status.BadRequest, "did not find function names in %s", f.Name)
		}
		for _, name := range names {
			logger.Debugf("Found cc function: %s", name)
		}
		return &Result{File: f.Name, Receiver: receiver, Operations: names}, nil
	}
	return nil, status.Newf(status.MissingEntryPoint, status.BadRequest, "did not find the entry point in %d chaincode file(s)", len(files))
}

// ScanDir scans the *.go files of dir, not recursing, in name order
func (s *Scanner) ScanDir(dir string) (*Result, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, status.New(status.FilesystemError, status.InternalError.ToInt32(), errors.Wrapf(err, "reading chaincode directory %s failed", dir).Error(), nil)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".go") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, status.Newf(status.MissingEntryPoint, status.BadRequest, "did not find any *.go files in %s", dir)
	}
	sort.Strings(names)

	files := make([]SourceFile, 0, len(names))
	for _, name := range names {
		content, err := ioutil.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, status.New(status.FilesystemError, status.InternalError.ToInt32(), errors.Wrapf(err, "reading %s failed", name).Error(), nil)
		}
		files = append(files, SourceFile{Name: name, Content: string(content)})
	}
	return s.Scan(files)
}
