/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	"encoding/json"
)

// ChaincodeTypeGolang is the only chaincode language this SDK deploys
const ChaincodeTypeGolang = "GOLANG"

// REST paths consumed by the SDK
const (
	ChainPath     = "/chain"
	BlocksPath    = "/chain/blocks/"
	QueryPath     = "/devops/query"
	InvokePath    = "/devops/invoke"
	DeployPath    = "/devops/deploy"
	RegistrarPath = "/registrar"
)

// ChaincodeID identifies a chaincode by deployed name or by source path
type ChaincodeID struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`
}

// ChaincodeInput is the function call carried by a request
type ChaincodeInput struct {
	Function string   `json:"function"`
	Args     []string `json:"args"`
}

// ChaincodeSpec is the body of deploy requests and the payload of invoke/query requests
type ChaincodeSpec struct {
	Type          string         `json:"type"`
	ChaincodeID   ChaincodeID    `json:"chaincodeID"`
	CtorMsg       ChaincodeInput `json:"ctorMsg"`
	SecureContext string         `json:"secureContext"`
}

// InvocationRequest is the body of invoke and query requests
type InvocationRequest struct {
	ChaincodeSpec ChaincodeSpec `json:"chaincodeSpec"`
}

// Response is the reply of devops and registrar calls
type Response struct {
	OK      string `json:"OK,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"Error,omitempty"`
}

// EnrollRequest is the body of a registrar call
type EnrollRequest struct {
	EnrollID     string `json:"enrollId"`
	EnrollSecret string `json:"enrollSecret"`
}

// ChainStats is the reply of GET /chain
type ChainStats struct {
	Height            uint64 `json:"height"`
	CurrentBlockHash  string `json:"currentBlockHash,omitempty"`
	PreviousBlockHash string `json:"previousBlockHash,omitempty"`
}

// Block is the reply of GET /chain/blocks/{id}
type Block struct {
	Transactions      []json.RawMessage `json:"transactions,omitempty"`
	StateHash         string            `json:"stateHash,omitempty"`
	PreviousBlockHash string            `json:"previousBlockHash,omitempty"`
	ConsensusMetadata string            `json:"consensusMetadata,omitempty"`
	NonHashData       json.RawMessage   `json:"nonHashData,omitempty"`
}

// ChaincodeDetails describes a chaincode, where its source lives and the
// peers it is reached through. It is the document persisted by Save.
type ChaincodeDetails struct {
	DeployedName string           `json:"deployed_name" yaml:"deployed_name"`
	Func         []string         `json:"func" yaml:"func"`
	GitURL       string           `json:"git_url" yaml:"git_url"`
	Peers        []PeerDescriptor `json:"peers" yaml:"peers"`
	Vars         []string         `json:"vars" yaml:"vars"`
	UnzipDir     string           `json:"unzip_dir" yaml:"unzip_dir"`
	ZipURL       string           `json:"zip_url" yaml:"zip_url"`
}

// SavedChaincode is the persisted envelope of ChaincodeDetails
type SavedChaincode struct {
	Details ChaincodeDetails `json:"details"`
}
