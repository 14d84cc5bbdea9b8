/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides bounded backoff for SDK-internal polling, such as
// waiting for a freshly deployed chaincode to appear on the ledger.
// Caller operations are never retried automatically.
package retry

import (
	"context"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
)

// Opts defines the retry parameters
type Opts struct {
	// Attempts the number retry attempts, zero means bounded only by MaxElapsed
	Attempts int
	// InitialBackoff the backoff interval for the first retry attempt
	InitialBackoff time.Duration
	// MaxBackoff the maximum backoff interval for any retry attempt
	MaxBackoff time.Duration
	// BackoffFactor the factor by which the InitialBackoff is exponentially
	// incremented for consecutive retry attempts.
	BackoffFactor float64
	// MaxElapsed bounds the total time spent retrying, zero means no bound
	MaxElapsed time.Duration
	// RetryableCodes defines the status codes, mapped by kind, that
	// warrant a retry
	RetryableCodes map[status.Kind][]status.Code
}

// Handler retry handler interface decides whether a retry is required for the given
// error
type Handler interface {
	Required(ctx context.Context, err error) bool
}

type impl struct {
	opts    Opts
	retries int
	started time.Time
}

// New retry Handler with the given opts
func New(opts Opts) Handler {
	if len(opts.RetryableCodes) == 0 {
		opts.RetryableCodes = DefaultRetryableCodes
	}
	return &impl{opts: opts, started: time.Now()}
}

// Required determines if retry is required for the given error. When it is,
// Required blocks for the backoff period, returning false if ctx is done first
// or if the backoff would exceed MaxElapsed.
func (i *impl) Required(ctx context.Context, err error) bool {
	if i.opts.Attempts > 0 && i.retries >= i.opts.Attempts {
		return false
	}

	s, ok := status.FromError(err)
	if !ok || err == nil || !i.isRetryable(s.Kind, s.Code) {
		return false
	}

	backoff := i.backoffPeriod()
	if i.opts.MaxElapsed > 0 && time.Since(i.started)+backoff > i.opts.MaxElapsed {
		return false
	}

	t := time.NewTimer(backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
	}
	i.retries++
	return true
}

// backoffPeriod calculates the backoff duration based on the provided opts
func (i *impl) backoffPeriod() time.Duration {
	backoff, max := float64(i.opts.InitialBackoff), float64(i.opts.MaxBackoff)
	for j := 0; j < i.retries && backoff < max; j++ {
		backoff *= i.opts.BackoffFactor
	}
	if backoff > max {
		backoff = max
	}

	return time.Duration(backoff)
}

// isRetryable determines if the given status is configured to be retryable
func (i *impl) isRetryable(k status.Kind, c int32) bool {
	for _, code := range i.opts.RetryableCodes[k] {
		if status.Code(c) == code {
			return true
		}
	}
	return false
}
