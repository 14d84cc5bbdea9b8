/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyvaluestore

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "ibc-kvs")
	require.NoError(t, err)
	return dir
}

func TestDefaultFKVS(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	testFKVS(t, dir, nil)
}

func TestFKVSWithCustomKeySerializer(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	keySerializer := func(key interface{}) (string, error) {
		keyString, ok := key.(string)
		if !ok {
			return "", errors.New("converting key to string failed")
		}
		return filepath.Join(dir, fmt.Sprintf("mypath/%s/valuefile", keyString)), nil
	}
	testFKVS(t, dir, keySerializer)
}

func testFKVS(t *testing.T, dir string, keySerializer KeySerializer) {
	var store core.KVStore
	store, err := New(&FileKeyValueStoreOptions{Path: dir, KeySerializer: keySerializer})
	require.NoError(t, err)

	assert.EqualError(t, store.Store(nil, []byte("1234")), "key is nil")
	assert.EqualError(t, store.Store("key", nil), "value is nil")

	require.NoError(t, store.Store("key1", []byte("value1")))
	require.NoError(t, store.Store("key2", []byte("value2")))

	v, err := store.Load("key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), v)

	_, err = store.Load("missing")
	assert.Equal(t, core.ErrKeyValueNotFound, err)

	require.NoError(t, store.Delete("key1"))
	_, err = store.Load("key1")
	assert.Equal(t, core.ErrKeyValueNotFound, err)

	// deleting twice is fine
	require.NoError(t, store.Delete("key1"))

	v, err = store.Load("key2")
	require.NoError(t, err)
	assert.Equal(t, []byte("value2"), v)
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&FileKeyValueStoreOptions{})
	assert.True(t, status.IsKind(err, status.InputValidation))
}

func TestStoreNonBytesWithDefaultMarshaller(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	store, err := New(&FileKeyValueStoreOptions{Path: dir})
	require.NoError(t, err)
	assert.Error(t, store.Store("key", "not bytes"))
}

func TestStoreWriteFailure(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	// a regular file where the store expects a directory
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, ioutil.WriteFile(blocker, []byte("x"), 0644))

	store, err := New(&FileKeyValueStoreOptions{Path: blocker})
	require.NoError(t, err)

	err = store.Store("key", []byte("v"))
	require.Error(t, err)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.FilesystemError, s.Kind)
	assert.EqualValues(t, 500, s.Code)
}
