/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"context"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/retry"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/keyvaluestore"
	"github.com/ibm-blockchain/ibc-go/pkg/util/concurrent/futurevalue"
	"github.com/pkg/errors"
)

const deployFunction = "deploy"

// Deploy deploys the chaincode from its git URL and calls fcn with args.
// On success the deployed name is adopted and the details are saved to the
// temp directory and, when savePath is non-empty, to savePath. Deploy then
// waits at least the settle delay and polls the chain until it grows past
// the height observed before the deploy, bounded by the ready timeout.
func (c *Client) Deploy(ctx context.Context, fcn string, args []string, savePath string) (*DeployResponse, error) {
	c.mutex.RLock()
	gitURL := c.details.GitURL
	c.mutex.RUnlock()

	if gitURL == "" {
		return nil, status.Newf(status.InputValidation, status.BadRequest, "chaincode git_url is required for deploy")
	}
	if c.peers.Len() == 0 {
		return nil, status.Newf(status.NotReady, status.PreconditionFailed, "no peers registered")
	}
	if args == nil {
		args = []string{}
	}

	baseline := c.chainHeight(ctx)

	spec := fab.ChaincodeSpec{
		Type:          fab.ChaincodeTypeGolang,
		ChaincodeID:   fab.ChaincodeID{Path: gitURL},
		CtorMsg:       fab.ChaincodeInput{Function: fcn, Args: args},
		SecureContext: c.peers.Identity(),
	}

	logger.Infof("Deploying Chaincode - Start [%s]", gitURL)
	resp, err := c.post(ctx, spec)
	if err != nil {
		return nil, err
	}

	previous := c.Details()
	c.SetDeployedName(resp.Message)
	details := c.Details()
	if c.opts.tempDir != "" {
		c.replaceTempDetails(&previous, &details)
	}
	if savePath != "" {
		if _, err := keyvaluestore.SaveDetails(savePath, &details); err != nil {
			return nil, errors.WithMessagef(err, "chaincode deployed as %s but saving details failed", resp.Message)
		}
	}

	ready := c.waitReady(ctx, baseline)
	logger.Infof("Deploying Chaincode - Complete [%s] ready: %t", resp.Message, ready)

	return &DeployResponse{Name: resp.Message, Ready: ready, Response: *resp}, nil
}

// replaceTempDetails saves details to the temp directory and removes the
// descriptor saved under the previous name
func (c *Client) replaceTempDetails(previous, details *fab.ChaincodeDetails) {
	if _, err := keyvaluestore.SaveDetails(c.opts.tempDir, details); err != nil {
		logger.Warnf("failed to save chaincode details to temp directory: %s", err)
		return
	}
	if keyvaluestore.DetailsFileName(previous) == keyvaluestore.DetailsFileName(details) {
		return
	}
	if err := keyvaluestore.RemoveDetails(c.opts.tempDir, previous); err != nil {
		logger.Warnf("failed to remove stale chaincode details: %s", err)
	}
}

// DeployAsync deploys in the background. The future resolves to a *DeployResponse.
func (c *Client) DeployAsync(ctx context.Context, fcn string, args []string, savePath string) *futurevalue.Value {
	return futurevalue.Go(func() (interface{}, error) {
		resp, err := c.Deploy(ctx, fcn, args, savePath)
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
}

func (c *Client) post(ctx context.Context, spec fab.ChaincodeSpec) (*fab.Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.opts.deployTimeout)
	defer cancel()

	name := spec.ChaincodeID.Path
	c.metrics.InvocationsReceived.With("chaincode", name, "fcn", deployFunction).Add(1)
	start := time.Now()

	var resp fab.Response
	err := c.transport.Post(reqCtx, fab.DeployPath, spec, &resp)
	c.metrics.InvocationDuration.With("chaincode", name, "fcn", deployFunction).Observe(time.Since(start).Seconds())
	if err != nil {
		countFailure(c.metrics.InvocationTimeouts, c.metrics.InvocationsFailed, name, deployFunction, err)
		logger.Debugf("deploy - failure: %s", err)
		return nil, errors.WithMessage(err, "deploy failed")
	}
	if resp.Message == "" {
		return nil, status.New(status.TransportError, status.UnknownCode.ToInt32(), "deploy response carries no chaincode name", []interface{}{resp})
	}
	return &resp, nil
}

// chainHeight returns the current height, or zero if it cannot be read
func (c *Client) chainHeight(ctx context.Context) uint64 {
	stats, err := c.opts.stats.ChainStats(ctx)
	if err != nil {
		logger.Debugf("chain height unavailable before deploy: %s", err)
		return 0
	}
	return stats.Height
}

// waitReady returns true once the chain grows past baseline
func (c *Client) waitReady(ctx context.Context, baseline uint64) bool {
	settle := time.NewTimer(c.opts.settleDelay)
	defer settle.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-settle.C:
	}

	readyCtx, cancel := context.WithTimeout(ctx, c.opts.readyTimeout)
	defer cancel()

	opts := c.opts.retry
	if opts.MaxElapsed == 0 || opts.MaxElapsed > c.opts.readyTimeout {
		opts.MaxElapsed = c.opts.readyTimeout
	}
	handler := retry.New(opts)

	for {
		err := c.checkGrown(readyCtx, baseline)
		if err == nil {
			return true
		}
		if !handler.Required(readyCtx, err) {
			logger.Warnf("chaincode readiness not confirmed: %s", err)
			return false
		}
	}
}

func (c *Client) checkGrown(ctx context.Context, baseline uint64) error {
	stats, err := c.opts.stats.ChainStats(ctx)
	if err != nil {
		return err
	}
	if stats.Height <= baseline {
		return status.Newf(status.NotReady, status.ChaincodeNotReady, "chain height %d has not grown past %d", stats.Height, baseline)
	}
	return nil
}
