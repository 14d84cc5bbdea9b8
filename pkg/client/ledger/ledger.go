/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ledger enables chain and block queries against the selected peer.
//
//  Basic Flow:
//  1) Create ledger client over a transport
//  2) Query chain height or a block
package ledger

import (
	"context"
	"strconv"

	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/client")

// Client queries the ledger of the peer the transport targets
type Client struct {
	transport fab.Transport
}

// New returns a ledger client
func New(transport fab.Transport) *Client {
	return &Client{transport: transport}
}

// ChainStats returns the height and head hashes of the chain
func (c *Client) ChainStats(ctx context.Context) (*fab.ChainStats, error) {
	var stats fab.ChainStats
	if err := c.transport.Get(ctx, fab.ChainPath, &stats); err != nil {
		logger.Debugf("Chain Stats - failure: %s", err)
		return nil, errors.WithMessage(err, "chain stats query failed")
	}
	return &stats, nil
}

// BlockStats returns the block at the given height
func (c *Client) BlockStats(ctx context.Context, id uint64) (*fab.Block, error) {
	var block fab.Block
	if err := c.transport.Get(ctx, fab.BlocksPath+strconv.FormatUint(id, 10), &block); err != nil {
		logger.Debugf("Block Stats - failure: %s", err)
		return nil, errors.WithMessagef(err, "block %d query failed", id)
	}
	return &block, nil
}
