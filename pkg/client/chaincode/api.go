/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"context"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/retry"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk/metrics"
)

// Operation is a chaincode function bound from the scanned source. A
// successful call is tracked until the ledger grows.
type Operation func(ctx context.Context, args ...string) (*fab.Response, error)

// PeerContext exposes the registered peers and the identity of the
// selected one
type PeerContext interface {
	Identity() string
	Peers() []fab.PeerDescriptor
	Len() int
}

// DeployResponse contains the outcome of a deploy
type DeployResponse struct {
	// Name is the deployed chaincode name assigned by the peer
	Name string
	// Ready is true once the chain grew past the height observed before the
	// deploy, false if the readiness bound elapsed first
	Ready bool
	// Response is the raw reply of the deploy request
	Response fab.Response
}

// names served by the built-in calls, never bound from scanned source
var builtins = map[string]struct{}{
	"read":   {},
	"query":  {},
	"write":  {},
	"remove": {},
	"deploy": {},
}

const (
	queryFunction  = "query"
	writeFunction  = "write"
	deleteFunction = "delete"
)

const (
	defaultDeployTimeout = 80 * time.Second
	defaultSettleDelay   = time.Second
	defaultReadyTimeout  = 60 * time.Second
)

// Option configures a Client
type Option func(*options)

type options struct {
	tracker         fab.ActionTracker
	stats           fab.ChainStatsProvider
	metricsProvider metrics.Provider
	tempDir         string
	deployTimeout   time.Duration
	settleDelay     time.Duration
	readyTimeout    time.Duration
	retry           retry.Opts
}

type noopTracker struct{}

func (noopTracker) Track() {}

func defaultOptions() options {
	return options{
		tracker:         noopTracker{},
		metricsProvider: metrics.DisabledProvider{},
		deployTimeout:   defaultDeployTimeout,
		settleDelay:     defaultSettleDelay,
		readyTimeout:    defaultReadyTimeout,
		retry:           retry.DefaultOpts,
	}
}

// WithTracker records successful mutating calls with the given tracker
func WithTracker(tracker fab.ActionTracker) Option {
	return func(o *options) {
		if tracker != nil {
			o.tracker = tracker
		}
	}
}

// WithChainStats sets the provider polled for deploy readiness. By default
// the chain of the transport's target is queried.
func WithChainStats(stats fab.ChainStatsProvider) Option {
	return func(o *options) {
		o.stats = stats
	}
}

// WithMetrics sets the provider of the call metrics
func WithMetrics(p metrics.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.metricsProvider = p
		}
	}
}

// WithTempDir sets the directory a deploy saves the chaincode details to
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithDeployTimeout sets the timeout of the deploy request
func WithDeployTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.deployTimeout = timeout
		}
	}
}

// WithSettleDelay sets the minimum wait after a deploy before readiness is polled
func WithSettleDelay(delay time.Duration) Option {
	return func(o *options) {
		if delay >= 0 {
			o.settleDelay = delay
		}
	}
}

// WithReadyTimeout bounds the readiness poll that follows a deploy
func WithReadyTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.readyTimeout = timeout
		}
	}
}

// WithRetry sets the backoff of the readiness poll
func WithRetry(opts retry.Opts) Option {
	return func(o *options) {
		o.retry = opts
	}
}
