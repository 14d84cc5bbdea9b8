/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package keyvaluestore persists values as files, one file per key.
package keyvaluestore

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/pkg/errors"
)

const (
	newDirMode  = 0755
	newFileMode = 0644
)

// KeySerializer converts a key to a unique file path
type KeySerializer func(key interface{}) (string, error)

// Marshaller marshals a value into a byte array
type Marshaller func(value interface{}) ([]byte, error)

// Unmarshaller unmarshals a value from a byte array
type Unmarshaller func(value []byte) (interface{}, error)

// FileKeyValueStore stores each value into a separate file.
// KeySerializer maps a key to a unique file path (relative to the store path).
// Marshaller and Unmarshaller convert a value to and from the file content.
type FileKeyValueStore struct {
	path          string
	keySerializer KeySerializer
	marshaller    Marshaller
	unmarshaller  Unmarshaller
}

// FileKeyValueStoreOptions allow overriding store defaults
type FileKeyValueStoreOptions struct {
	// Store path, mandatory
	Path string
	// Optional. If not provided, the key is used as the file name under Path.
	KeySerializer KeySerializer
	// Optional. If not provided, values must be []byte.
	Marshaller Marshaller
	// Optional. If not provided, the raw bytes are returned.
	Unmarshaller Unmarshaller
}

func defaultMarshaller(value interface{}) ([]byte, error) {
	valueBytes, ok := value.([]byte)
	if !ok {
		return nil, errors.New("converting value to byte array failed")
	}
	return valueBytes, nil
}

func defaultUnmarshaller(value []byte) (interface{}, error) {
	return value, nil
}

// New creates a new instance of FileKeyValueStore using provided options
func New(opts *FileKeyValueStoreOptions) (*FileKeyValueStore, error) {
	if opts == nil {
		return nil, errors.New("FileKeyValueStoreOptions is nil")
	}
	if opts.Path == "" {
		return nil, status.Newf(status.InputValidation, status.BadRequest, "the option 'dir' is required")
	}
	store := &FileKeyValueStore{
		path:          opts.Path,
		keySerializer: opts.KeySerializer,
		marshaller:    opts.Marshaller,
		unmarshaller:  opts.Unmarshaller,
	}
	if store.keySerializer == nil {
		store.keySerializer = func(key interface{}) (string, error) {
			keyString, ok := key.(string)
			if !ok {
				return "", errors.New("converting key to string failed")
			}
			return filepath.Join(opts.Path, keyString), nil
		}
	}
	if store.marshaller == nil {
		store.marshaller = defaultMarshaller
	}
	if store.unmarshaller == nil {
		store.unmarshaller = defaultUnmarshaller
	}
	return store, nil
}

// GetPath returns the store path
func (fkvs *FileKeyValueStore) GetPath() string {
	return fkvs.path
}

// Load returns the value stored for a key.
// If a value for the key was not found, returns (nil, core.ErrKeyValueNotFound)
func (fkvs *FileKeyValueStore) Load(key interface{}) (interface{}, error) {
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return nil, err
	}
	bytes, err := ioutil.ReadFile(file) // nolint: gas
	if os.IsNotExist(err) {
		return nil, core.ErrKeyValueNotFound
	}
	if err != nil {
		return nil, fsError(err, "reading %s failed", file)
	}
	if len(bytes) == 0 {
		return nil, core.ErrKeyValueNotFound
	}
	return fkvs.unmarshaller(bytes)
}

// Store sets the value for the key, creating the store directory if needed
func (fkvs *FileKeyValueStore) Store(key interface{}, value interface{}) error {
	if key == nil {
		return errors.New("key is nil")
	}
	if value == nil {
		return errors.New("value is nil")
	}
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return err
	}
	valueBytes, err := fkvs.marshaller(value)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), newDirMode); err != nil {
		return fsError(err, "creating directory for %s failed", file)
	}
	if err := ioutil.WriteFile(file, valueBytes, newFileMode); err != nil {
		return fsError(err, "fs write error for %s", file)
	}
	return nil
}

// Delete deletes the value for a key. A missing value is not an error.
func (fkvs *FileKeyValueStore) Delete(key interface{}) error {
	if key == nil {
		return errors.New("key is nil")
	}
	file, err := fkvs.keySerializer(key)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fsError(err, "removing %s failed", file)
	}
	return nil
}

func fsError(err error, format string, args ...interface{}) error {
	return status.New(status.FilesystemError, status.InternalError.ToInt32(), errors.Wrapf(err, format, args...).Error(), nil)
}
