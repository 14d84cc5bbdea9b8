/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package chaincode enables calls to a deployed chaincode through the REST
// API of the selected peer.
//
// A client instance holds the chaincode details and the operations bound
// from the chaincode source. Besides the bound operations, every client
// serves the built-in calls Read, Query, Write and Remove, and deploys the
// chaincode with Deploy.
//
//  Basic Flow:
//  1) Create client over a transport and the peer registry
//  2) Configure the chaincode location and bind the scanned operation names
//  3) Invoke bound operations or the built-in calls
package chaincode

import (
	"context"
	"sync"
	"time"

	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/ibm-blockchain/ibc-go/pkg/client/ledger"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk/metrics"
	"github.com/ibm-blockchain/ibc-go/pkg/util/concurrent/futurevalue"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/client")

// Client calls a deployed chaincode
type Client struct {
	transport fab.Transport
	peers     PeerContext
	opts      options
	metrics   *metrics.ClientMetrics

	mutex      sync.RWMutex
	details    fab.ChaincodeDetails
	operations map[string]Operation
}

// New returns a chaincode client
func New(transport fab.Transport, peers PeerContext, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.stats == nil {
		o.stats = ledger.New(transport)
	}
	return &Client{
		transport:  transport,
		peers:      peers,
		opts:       o,
		metrics:    metrics.NewClientMetrics(o.metricsProvider),
		details:    fab.ChaincodeDetails{Func: []string{}, Vars: []string{}},
		operations: make(map[string]Operation),
	}
}

// Configure sets the chaincode source locations and, when non-empty, the
// deployed name. Bound operations are kept.
func (c *Client) Configure(cfg fab.ChaincodeConfig) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.details.ZipURL = cfg.ZipURL
	c.details.UnzipDir = cfg.UnzipDir
	c.details.GitURL = cfg.GitURL
	if cfg.DeployedName != "" {
		c.details.DeployedName = cfg.DeployedName
	}
}

// DeployedName returns the name the chaincode was deployed under
func (c *Client) DeployedName() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.details.DeployedName
}

// SetDeployedName adopts an already deployed chaincode
func (c *Client) SetDeployedName(name string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.details.DeployedName = name
}

// Details returns a copy of the chaincode details, including the registered peers
func (c *Client) Details() fab.ChaincodeDetails {
	c.mutex.RLock()
	details := c.details
	details.Func = append([]string{}, c.details.Func...)
	details.Vars = append([]string{}, c.details.Vars...)
	c.mutex.RUnlock()

	details.Peers = c.peers.Peers()
	return details
}

// Bind registers an operation for every name not already bound and returns
// the newly bound names. Names of the built-in calls are skipped.
func (c *Client) Bind(names []string) []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var bound []string
	for _, name := range names {
		if _, ok := builtins[name]; ok {
			logger.Debugf("skipping operation %s, name is served by a built-in call", name)
			continue
		}
		if _, ok := c.operations[name]; ok {
			continue
		}
		logger.Debugf("binding operation %s", name)
		c.operations[name] = c.newOperation(name)
		c.details.Func = append(c.details.Func, name)
		bound = append(bound, name)
	}
	return bound
}

func (c *Client) newOperation(fcn string) Operation {
	return func(ctx context.Context, args ...string) (*fab.Response, error) {
		return c.invoke(ctx, fcn, args)
	}
}

// Operation returns the bound operation with the given name
func (c *Client) Operation(name string) (Operation, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	op, ok := c.operations[name]
	return op, ok
}

// Operations returns the names of the bound operations in binding order
func (c *Client) Operations() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]string{}, c.details.Func...)
}

// Invoke calls the bound operation with the given name
func (c *Client) Invoke(ctx context.Context, name string, args ...string) (*fab.Response, error) {
	op, ok := c.Operation(name)
	if !ok {
		return nil, status.Newf(status.InputValidation, status.BadRequest, "operation %s is not bound", name)
	}
	return op(ctx, args...)
}

// InvokeAsync calls the bound operation in the background. The future
// resolves to a *fab.Response.
func (c *Client) InvokeAsync(ctx context.Context, name string, args ...string) *futurevalue.Value {
	return futurevalue.Go(func() (interface{}, error) {
		resp, err := c.Invoke(ctx, name, args...)
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
}

// Read returns the state value stored under name
func (c *Client) Read(ctx context.Context, name string) (string, error) {
	return c.query(ctx, []string{name})
}

// Query calls the chaincode query function with the given arguments
func (c *Client) Query(ctx context.Context, args ...string) (string, error) {
	return c.query(ctx, args)
}

// Write stores value under name
func (c *Client) Write(ctx context.Context, name, value string) (*fab.Response, error) {
	return c.invoke(ctx, writeFunction, []string{name, value})
}

// Remove deletes the state value stored under name
func (c *Client) Remove(ctx context.Context, name string) (*fab.Response, error) {
	return c.invoke(ctx, deleteFunction, []string{name})
}

func (c *Client) invoke(ctx context.Context, fcn string, args []string) (*fab.Response, error) {
	req, err := c.newRequest(fcn, args)
	if err != nil {
		return nil, err
	}
	name := req.ChaincodeSpec.ChaincodeID.Name

	c.metrics.InvocationsReceived.With("chaincode", name, "fcn", fcn).Add(1)
	start := time.Now()

	var resp fab.Response
	err = c.transport.Post(ctx, fab.InvokePath, req, &resp)
	c.metrics.InvocationDuration.With("chaincode", name, "fcn", fcn).Observe(time.Since(start).Seconds())
	if err != nil {
		countFailure(c.metrics.InvocationTimeouts, c.metrics.InvocationsFailed, name, fcn, err)
		logger.Debugf("%s - failure: %s", fcn, err)
		return nil, errors.WithMessagef(err, "invoke of %s failed", fcn)
	}

	logger.Debugf("%s - success: %+v", fcn, resp)
	c.opts.tracker.Track()
	return &resp, nil
}

func (c *Client) query(ctx context.Context, args []string) (string, error) {
	req, err := c.newRequest(queryFunction, args)
	if err != nil {
		return "", err
	}
	name := req.ChaincodeSpec.ChaincodeID.Name

	c.metrics.QueriesReceived.With("chaincode", name, "fcn", queryFunction).Add(1)
	start := time.Now()

	var resp fab.Response
	err = c.transport.Post(ctx, fab.QueryPath, req, &resp)
	c.metrics.QueryDuration.With("chaincode", name, "fcn", queryFunction).Observe(time.Since(start).Seconds())
	if err != nil {
		countFailure(c.metrics.QueryTimeouts, c.metrics.QueriesFailed, name, queryFunction, err)
		logger.Debugf("Query - failure: %s", err)
		return "", errors.WithMessage(err, "query failed")
	}
	return resp.OK, nil
}

func (c *Client) newRequest(fcn string, args []string) (*fab.InvocationRequest, error) {
	name := c.DeployedName()
	if name == "" {
		return nil, status.Newf(status.NotReady, status.PreconditionFailed, "chaincode has not been deployed, deployed_name is empty")
	}
	if c.peers.Len() == 0 {
		return nil, status.Newf(status.NotReady, status.PreconditionFailed, "no peers registered")
	}
	if args == nil {
		args = []string{}
	}
	return &fab.InvocationRequest{
		ChaincodeSpec: fab.ChaincodeSpec{
			Type:          fab.ChaincodeTypeGolang,
			ChaincodeID:   fab.ChaincodeID{Name: name},
			CtorMsg:       fab.ChaincodeInput{Function: fcn, Args: args},
			SecureContext: c.peers.Identity(),
		},
	}, nil
}

// countFailure counts err as a timeout or as a failure labelled by its kind
func countFailure(timeouts, failed kitmetrics.Counter, name, fcn string, err error) {
	kind := status.Unknown
	if s, ok := status.FromError(err); ok {
		if s.Kind == status.TransportError && s.Code == status.Timeout.ToInt32() {
			timeouts.With("chaincode", name, "fcn", fcn).Add(1)
			return
		}
		kind = s.Kind
	}
	failed.With("chaincode", name, "fcn", fcn, "fail", kind.String()).Add(1)
}
