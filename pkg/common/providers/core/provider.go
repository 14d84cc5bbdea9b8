/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package core

// ConfigBackend backend for all config types in SDK
type ConfigBackend interface {
	Lookup(key string) (interface{}, bool)
}

// ConfigProvider provides config backend for SDK
type ConfigProvider func() ([]ConfigBackend, error)

// TimeoutType enumerates the different types of outgoing calls
type TimeoutType int

const (
	// PeerRequest default timeout of a REST call to a peer
	PeerRequest TimeoutType = iota
	// Deploy timeout of a chaincode deploy request
	Deploy
	// DeploySettle minimum wait after a deploy before readiness polling
	DeploySettle
	// DeployReady upper bound of the post-deploy readiness poll
	DeployReady
	// ArchiveDownload timeout of a chaincode archive download
	ArchiveDownload
)
