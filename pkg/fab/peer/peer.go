/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package peer keeps the ordered list of peers of a network, the peer
// currently targeted by the transport and the identity enrolled on each peer.
package peer

import (
	"fmt"
	"strings"

	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/core/config/urlutil"
)

const idSeparator = "_"

// FromPeerConfig derives the descriptor of a configured peer
func FromPeerConfig(cfg fab.PeerConfig) fab.PeerDescriptor {
	return fab.PeerDescriptor{
		Name:    displayName(cfg),
		APIHost: cfg.APIHost,
		APIPort: cfg.APIPort,
		ID:      cfg.ID,
		SSL:     urlutil.IsTLSEnabled(cfg.APIURL),
	}
}

// displayName is the id suffix after the last separator joined with host:port,
// e.g. "vp0-peer0.example.com:443"
func displayName(cfg fab.PeerConfig) string {
	suffix := cfg.ID
	if pos := strings.LastIndex(cfg.ID, idSeparator); pos >= 0 {
		suffix = cfg.ID[pos+len(idSeparator):]
	}
	return fmt.Sprintf("%s-%s:%d", suffix, cfg.APIHost, cfg.APIPort)
}
