/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ccscanner

import (
	"strings"
	"testing"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleRun = `
func (t *SimpleChaincode) Run(stub *shim.ChaincodeStub, function string, args []string) ([]byte, error) {
	if function == "write" { return t.write(stub, args) }
	return t.complexFunc(stub, args); t.write(stub, args)
}`

func newTestScanner(t *testing.T) *Scanner {
	d, err := NewRegexpDiscoverer("", "")
	require.NoError(t, err)
	return New(d)
}

func TestDiscover(t *testing.T) {
	d, err := NewRegexpDiscoverer(DefaultContractType, DefaultEntryFunction)
	require.NoError(t, err)

	receiver, names, err := d.Discover(simpleRun)
	require.NoError(t, err)
	assert.Equal(t, "t", receiver)
	assert.Equal(t, []string{"write", "complexFunc"}, names)
}

func TestDiscoverIsCaseInsensitive(t *testing.T) {
	d, err := NewRegexpDiscoverer("", "")
	require.NoError(t, err)

	receiver, names, err := d.Discover("func (cc *simplechaincode) run(a int) { x := cc.Alpha(a); CC.beta() }")
	require.NoError(t, err)
	assert.Equal(t, "cc", receiver)
	assert.Equal(t, []string{"Alpha", "beta"}, names)
}

func TestDiscoverCustomEntryPoint(t *testing.T) {
	d, err := NewRegexpDiscoverer("Marbles", "Invoke")
	require.NoError(t, err)

	_, _, err = d.Discover(simpleRun)
	assert.Equal(t, ErrNoEntryPoint, err)

	receiver, names, err := d.Discover("func (m *Marbles) Invoke() { m.init_marble() }")
	require.NoError(t, err)
	assert.Equal(t, "m", receiver)
	assert.Equal(t, []string{"init_marble"}, names)
}

func TestDiscoverReportsCommentedCalls(t *testing.T) {
	d, err := NewRegexpDiscoverer("", "")
	require.NoError(t, err)

	_, names, err := d.Discover("func (t *SimpleChaincode) Run() {\n\t// t.legacy(stub)\n\tt.current()\n}")
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "current"}, names)
}

func TestScanIsDeterministic(t *testing.T) {
	s := newTestScanner(t)
	files := []SourceFile{{Name: "cc.go", Content: simpleRun}}

	first, err := s.Scan(files)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := s.Scan(files)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestScanUsesFirstMatchingFileOnly(t *testing.T) {
	s := newTestScanner(t)
	files := []SourceFile{
		{Name: "util.go", Content: "package main\nfunc helper() {}"},
		{Name: "cc.go", Content: simpleRun},
		{Name: "other.go", Content: "func (x *SimpleChaincode) Run() { x.other() }"},
	}

	result, err := s.Scan(files)
	require.NoError(t, err)
	assert.Equal(t, "cc.go", result.File)
	assert.Equal(t, []string{"write", "complexFunc"}, result.Operations)
}

// markerDiscoverer finds operations listed after an "ops:" marker
type markerDiscoverer struct{}

func (markerDiscoverer) Discover(source string) (string, []string, error) {
	i := strings.Index(source, "ops:")
	if i < 0 {
		return "", nil, errors.Wrap(ErrNoEntryPoint, "no ops marker")
	}
	return "", strings.Fields(source[i+len("ops:"):]), nil
}

func TestScanCustomDiscovererWrapsNoEntryPoint(t *testing.T) {
	s := New(markerDiscoverer{})
	files := []SourceFile{
		{Name: "a.go", Content: "package main"},
		{Name: "b.go", Content: "// ops: init transfer"},
	}

	result, err := s.Scan(files)
	require.NoError(t, err)
	assert.Equal(t, "b.go", result.File)
	assert.Equal(t, []string{"init", "transfer"}, result.Operations)

	_, err = s.Scan(files[:1])
	assert.True(t, status.IsKind(err, status.MissingEntryPoint))
}

func TestScanMissingEntryPoint(t *testing.T) {
	s := newTestScanner(t)

	_, err := s.Scan([]SourceFile{{Name: "util.go", Content: "package main"}})
	assert.True(t, status.IsKind(err, status.MissingEntryPoint))

	_, err = s.Scan(nil)
	assert.True(t, status.IsKind(err, status.MissingEntryPoint))
}

func TestScanNoOperations(t *testing.T) {
	s := newTestScanner(t)

	_, err := s.Scan([]SourceFile{{Name: "cc.go", Content: "func (t *SimpleChaincode) Run() { return nil }"}})
	assert.True(t, status.IsKind(err, status.NoOperationsFound))
}

func TestScanDir(t *testing.T) {
	result, err := newTestScanner(t).ScanDir("testdata/simple")
	require.NoError(t, err)
	assert.Equal(t, "b_chaincode.go", result.File)
	assert.Equal(t, "t", result.Receiver)
	assert.Equal(t, []string{"init", "write", "transfer", "read"}, result.Operations)
}

func TestScanDirErrors(t *testing.T) {
	s := newTestScanner(t)

	_, err := s.ScanDir("testdata/missing")
	assert.True(t, status.IsKind(err, status.FilesystemError))

	_, err = s.ScanDir("testdata/noentry")
	assert.True(t, status.IsKind(err, status.MissingEntryPoint))

	// a directory holding no *.go file at all
	_, err = s.ScanDir("testdata")
	assert.True(t, status.IsKind(err, status.MissingEntryPoint))
}
