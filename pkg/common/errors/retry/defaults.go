/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
)

const (
	// DefaultInitialBackoff default initial backoff
	DefaultInitialBackoff = 500 * time.Millisecond
	// DefaultMaxBackoff default maximum backoff
	DefaultMaxBackoff = 5 * time.Second
	// DefaultBackoffFactor default backoff factor
	DefaultBackoffFactor = 2.0
)

// DefaultOpts default retry options
var DefaultOpts = Opts{
	InitialBackoff: DefaultInitialBackoff,
	MaxBackoff:     DefaultMaxBackoff,
	BackoffFactor:  DefaultBackoffFactor,
	RetryableCodes: DefaultRetryableCodes,
}

// DefaultRetryableCodes are the readiness conditions worth polling again:
// chaincode not yet visible and transient transport failures.
var DefaultRetryableCodes = map[status.Kind][]status.Code{
	status.NotReady: {
		status.ChaincodeNotReady,
	},
	status.TransportError: {
		status.ConnectionFailed,
		status.Timeout,
		status.Code(502),
		status.Code(503),
		status.Code(504),
	},
}
