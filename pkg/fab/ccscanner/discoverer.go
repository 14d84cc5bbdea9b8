/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ccscanner

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

const (
	// DefaultContractType is the chaincode struct whose dispatch function is searched
	DefaultContractType = "SimpleChaincode"
	// DefaultEntryFunction is the dispatch function name
	DefaultEntryFunction = "Run"
)

// ErrNoEntryPoint is returned by a Discoverer when the source has no entry point
var ErrNoEntryPoint = errors.New("entry point not found")

// Discoverer extracts the receiver of the entry point and the operation
// names called on it from the text of one source file
type Discoverer interface {
	Discover(source string) (receiver string, names []string, err error)
}

// RegexpDiscoverer is a textual Discoverer. It finds
// "func (<recv> *<Type>) <Function>" and then every "<recv>.<name>(" in
// the whole file. Matches inside comments and string literals are reported too.
type RegexpDiscoverer struct {
	entryPoint *regexp.Regexp
}

// NewRegexpDiscoverer returns a discoverer for the given contract type and
// dispatch function; empty values fall back to SimpleChaincode and Run
func NewRegexpDiscoverer(contractType, entryFunction string) (*RegexpDiscoverer, error) {
	if contractType == "" {
		contractType = DefaultContractType
	}
	if entryFunction == "" {
		entryFunction = DefaultEntryFunction
	}

	expr := fmt.Sprintf(`(?i)func\s+\((\w+)\s+\*%s\)\s+%s\b`, regexp.QuoteMeta(contractType), regexp.QuoteMeta(entryFunction))
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid entry point %s.%s", contractType, entryFunction)
	}
	return &RegexpDiscoverer{entryPoint: re}, nil
}

// Discover implements Discoverer. Names are distinct, in order of first occurrence.
func (d *RegexpDiscoverer) Discover(source string) (string, []string, error) {
	m := d.entryPoint.FindStringSubmatch(source)
	if m == nil {
		return "", nil, ErrNoEntryPoint
	}
	receiver := m[1]

	calls := regexp.MustCompile(`(?i)\s` + regexp.QuoteMeta(receiver) + `\.(\w+)\(`)

	var names []string
	seen := make(map[string]bool)
	for _, c := range calls.FindAllStringSubmatch(source, -1) {
		if !seen[c[1]] {
			seen[c[1]] = true
			names = append(names, c[1])
		}
	}
	return receiver, names, nil
}
