/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	"context"
	"fmt"
)

// Target addresses the REST endpoint of a peer
type Target struct {
	Host string
	Port int
	SSL  bool
}

// URL returns the base URL of the target
func (t Target) URL() string {
	scheme := "http"
	if t.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, t.Host, t.Port)
}

// IsZero returns true if no host has been configured
func (t Target) IsZero() bool {
	return t.Host == ""
}

// Transport executes JSON request/response calls against a peer's REST API.
// Implementations must be safe for concurrent use.
type Transport interface {
	// Configure sets the default target used by Get and Post
	Configure(target Target)
	// Target returns the default target
	Target() Target
	// Get issues a GET against the default target and decodes the JSON response into result
	Get(ctx context.Context, path string, result interface{}) error
	// Post issues a POST of the JSON encoded body against the default target
	Post(ctx context.Context, path string, body interface{}, result interface{}) error
	// PostTo issues a POST against an explicit target
	PostTo(ctx context.Context, target Target, path string, body interface{}, result interface{}) error
}

// ChainStatsProvider reports the current state of the chain
type ChainStatsProvider interface {
	ChainStats(ctx context.Context) (*ChainStats, error)
}

// ActionTracker records successful mutating calls awaiting ledger confirmation
type ActionTracker interface {
	Track()
}
