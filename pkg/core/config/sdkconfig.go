/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/core/config/lookup"
	"github.com/pkg/errors"
)

const (
	defaultTempDir            = "./temp"
	defaultPeerRequestTimeout = time.Second * 60
	defaultDeployTimeout      = time.Second * 80
	defaultDeploySettle       = time.Second * 1
	defaultDeployReadyTimeout = time.Second * 60
	defaultArchiveTimeout     = time.Second * 60
	defaultFastInterval       = time.Millisecond * 500
	defaultSlowInterval       = time.Second * 10
	defaultFreshness          = time.Second * 3
	defaultHealthWindow       = time.Second * 60
	defaultEntryType          = "SimpleChaincode"
	defaultEntryFunction      = "Run"
)

// MonitorConfig tunes the block height monitor
type MonitorConfig struct {
	FastInterval time.Duration
	SlowInterval time.Duration
	Freshness    time.Duration
	HealthWindow time.Duration
}

// EntryPointConfig names the contract type and dispatch function searched by the scanner
type EntryPointConfig struct {
	Type     string
	Function string
}

// ClientConfig holds the client side settings
type ClientConfig struct {
	TempDir       string
	UserFilter    string
	ChaincodePath string
	EntryPoint    EntryPointConfig
	Monitor       MonitorConfig
}

// SDKConfig is the typed view of the configuration backends
type SDKConfig struct {
	backend   *lookup.ConfigLookup
	client    ClientConfig
	network   fab.NetworkConfig
	chaincode fab.ChaincodeConfig
}

// New returns the typed configuration read from the given backends.
// Missing sections are left empty; required fields are validated by their consumers.
func New(coreBackend ...core.ConfigBackend) (*SDKConfig, error) {
	c := &SDKConfig{backend: lookup.New(coreBackend...)}

	if err := c.backend.UnmarshalKey("network", &c.network); err != nil {
		return nil, errors.WithMessage(err, "failed to parse 'network' config item")
	}
	if err := c.backend.UnmarshalKey("chaincode", &c.chaincode); err != nil {
		return nil, errors.WithMessage(err, "failed to parse 'chaincode' config item")
	}

	c.client = ClientConfig{
		TempDir:       c.backend.GetPath("client.tempDir", defaultTempDir),
		UserFilter:    c.backend.GetString("client.users.filter"),
		ChaincodePath: c.backend.GetPath("client.chaincode.path", ""),
		EntryPoint: EntryPointConfig{
			Type:     c.backend.GetStringOrDefault("client.chaincode.entryPoint.type", defaultEntryType),
			Function: c.backend.GetStringOrDefault("client.chaincode.entryPoint.function", defaultEntryFunction),
		},
		Monitor: MonitorConfig{
			FastInterval: c.backend.GetDurationOrDefault("client.monitor.fastInterval", defaultFastInterval),
			SlowInterval: c.backend.GetDurationOrDefault("client.monitor.slowInterval", defaultSlowInterval),
			Freshness:    c.backend.GetDurationOrDefault("client.monitor.freshness", defaultFreshness),
			HealthWindow: c.backend.GetDurationOrDefault("client.monitor.healthWindow", defaultHealthWindow),
		},
	}

	return c, nil
}

// Client returns the client settings
func (c *SDKConfig) Client() ClientConfig {
	return c.client
}

// Network returns the configured peers and users
func (c *SDKConfig) Network() fab.NetworkConfig {
	return c.network
}

// Chaincode returns the configured chaincode location
func (c *SDKConfig) Chaincode() fab.ChaincodeConfig {
	return c.chaincode
}

// Lookup exposes the raw backend lookup
func (c *SDKConfig) Lookup() *lookup.ConfigLookup {
	return c.backend
}

// Timeout reads timeouts for the given timeout type, if type is not found in the config
// then default is set as per the const value above for the corresponding type
func (c *SDKConfig) Timeout(tType core.TimeoutType) time.Duration {
	switch tType {
	case core.PeerRequest:
		return c.backend.GetDurationOrDefault("client.timeout", defaultPeerRequestTimeout)
	case core.Deploy:
		return c.backend.GetDurationOrDefault("client.deploy.timeout", defaultDeployTimeout)
	case core.DeploySettle:
		return c.backend.GetDurationOrDefault("client.deploy.settleDelay", defaultDeploySettle)
	case core.DeployReady:
		return c.backend.GetDurationOrDefault("client.deploy.readyTimeout", defaultDeployReadyTimeout)
	case core.ArchiveDownload:
		return c.backend.GetDurationOrDefault("client.archiveTimeout", defaultArchiveTimeout)
	}
	return defaultPeerRequestTimeout
}
