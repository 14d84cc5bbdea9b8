/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package event

import (
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk/metrics"
)

const (
	defaultFastInterval = 500 * time.Millisecond
	defaultSlowInterval = 10 * time.Second
	defaultFreshness    = 3 * time.Second
	defaultHealthWindow = 60 * time.Second
)

type options struct {
	fastInterval    time.Duration
	slowInterval    time.Duration
	freshness       time.Duration
	healthWindow    time.Duration
	now             func() time.Time
	metricsProvider metrics.Provider
}

func defaultOptions() options {
	return options{
		fastInterval:    defaultFastInterval,
		slowInterval:    defaultSlowInterval,
		freshness:       defaultFreshness,
		healthWindow:    defaultHealthWindow,
		now:             time.Now,
		metricsProvider: metrics.DisabledProvider{},
	}
}

// Option describes a functional parameter for the New constructor
type Option func(*options)

// WithFastInterval sets the tick interval
func WithFastInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fastInterval = d
		}
	}
}

// WithSlowInterval sets the idle heartbeat interval
func WithSlowInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.slowInterval = d
		}
	}
}

// WithFreshness sets how long a pending action keeps the monitor polling
func WithFreshness(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.freshness = d
		}
	}
}

// WithHealthWindow sets the period without a successful check after which HealthCheck fails
func WithHealthWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.healthWindow = d
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithMetrics records monitor metrics with the given provider
func WithMetrics(p metrics.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.metricsProvider = p
		}
	}
}
