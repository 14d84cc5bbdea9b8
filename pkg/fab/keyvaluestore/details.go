/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keyvaluestore

import (
	"encoding/json"
	"path/filepath"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

// DefaultDetailsFile is the file name used before a chaincode has a deployed name
const DefaultDetailsFile = "chaincode.json"

// DetailsFileName returns "<deployed_name>.json", or chaincode.json if not yet deployed
func DetailsFileName(details *fab.ChaincodeDetails) string {
	if details.DeployedName != "" {
		return details.DeployedName + ".json"
	}
	return DefaultDetailsFile
}

// NewDetailsStore returns a store of chaincode descriptors under dir.
// Values are *fab.ChaincodeDetails persisted as {"details": ...}.
func NewDetailsStore(dir string) (*FileKeyValueStore, error) {
	return New(&FileKeyValueStoreOptions{
		Path: dir,
		Marshaller: func(value interface{}) ([]byte, error) {
			details, ok := value.(*fab.ChaincodeDetails)
			if !ok {
				return nil, errors.Errorf("unexpected value type %T", value)
			}
			return json.Marshal(fab.SavedChaincode{Details: *details})
		},
		Unmarshaller: unmarshalDetails,
	})
}

func unmarshalDetails(value []byte) (interface{}, error) {
	var saved fab.SavedChaincode
	if err := json.Unmarshal(value, &saved); err != nil {
		return nil, status.New(status.InputValidation, status.BadRequest.ToInt32(), errors.Wrap(err, "invalid chaincode descriptor").Error(), nil)
	}
	return &saved.Details, nil
}

// SaveDetails writes details to dir and returns the file written
func SaveDetails(dir string, details *fab.ChaincodeDetails) (string, error) {
	store, err := NewDetailsStore(dir)
	if err != nil {
		return "", err
	}
	name := DetailsFileName(details)
	if err := store.Store(name, details); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// RemoveDetails deletes the descriptor of details from dir. A missing file is not an error.
func RemoveDetails(dir string, details *fab.ChaincodeDetails) error {
	store, err := NewDetailsStore(dir)
	if err != nil {
		return err
	}
	return store.Delete(DetailsFileName(details))
}

// ReadDetails parses a descriptor previously written by SaveDetails
func ReadDetails(path string) (*fab.ChaincodeDetails, error) {
	store, err := NewDetailsStore(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	value, err := store.Load(filepath.Base(path))
	if err == core.ErrKeyValueNotFound {
		return nil, status.Newf(status.FilesystemError, status.InternalError, "chaincode descriptor %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	return value.(*fab.ChaincodeDetails), nil
}
