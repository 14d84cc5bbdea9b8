/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status defines metadata for errors returned by ibc-go. Every error
// handed to a caller is, or wraps, a *Status carrying the error kind, a
// numeric code and any details (for example the body returned by a peer).
package status

import (
	"fmt"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/multi"
	"github.com/pkg/errors"
)

// Status provides additional information about an unsuccessful operation.
type Status struct {
	// Kind of failure
	Kind Kind
	// Code status code; an HTTP status for transport failures
	Code int32
	// Message status message
	Message string
	// Details any additional status details
	Details []interface{}
}

// Kind groups failures by their origin
type Kind int32

const (
	// Unknown kind
	Unknown Kind = iota

	// InputValidation is a missing or malformed argument or config field,
	// detected before any I/O
	InputValidation

	// FilesystemError is a local read/write failure
	FilesystemError

	// MissingEntryPoint means no scanned source file has a dispatch function
	MissingEntryPoint

	// NoOperationsFound means the entry point dispatches no operations
	NoOperationsFound

	// InvalidNetworkConfig is an empty or malformed peer list
	InvalidNetworkConfig

	// RegistrationFailed is a rejected or failed registrar enrollment
	RegistrationFailed

	// TransportError is a failed REST call. Code carries the HTTP status when
	// one was received.
	TransportError

	// NotReady means an operation was attempted before a peer or
	// deployed chaincode name was configured
	NotReady
)

// KindName maps the kinds in this package to human-readable strings
var KindName = map[int32]string{
	0: "Unknown",
	1: "InputValidation",
	2: "FilesystemError",
	3: "MissingEntryPoint",
	4: "NoOperationsFound",
	5: "InvalidNetworkConfig",
	6: "RegistrationFailed",
	7: "TransportError",
	8: "NotReady",
}

func (k Kind) String() string {
	if s, ok := KindName[int32(k)]; ok {
		return s
	}
	return Unknown.String()
}

// FromError returns a Status representing err if available,
// otherwise it returns nil, false.
func FromError(err error) (s *Status, ok bool) {
	if err == nil {
		return &Status{Code: int32(OK)}, true
	}
	if s, ok := err.(*Status); ok {
		return s, true
	}
	unwrappedErr := errors.Cause(err)
	if s, ok := unwrappedErr.(*Status); ok {
		return s, true
	}
	if m, ok := unwrappedErr.(multi.Errors); ok {
		var details []interface{}
		for _, err := range m {
			details = append(details, err)
		}
		return New(kindOf(m), MultipleErrors.ToInt32(), m.Error(), details), true
	}

	return nil, false
}

// kindOf returns the kind shared by all errors in m, or Unknown
func kindOf(m multi.Errors) Kind {
	kind := Unknown
	for i, err := range m {
		s, ok := FromError(err)
		if !ok {
			return Unknown
		}
		if i == 0 {
			kind = s.Kind
		} else if s.Kind != kind {
			return Unknown
		}
	}
	return kind
}

// IsKind returns true if err carries a Status of the given kind
func IsKind(err error, kind Kind) bool {
	s, ok := FromError(err)
	return ok && err != nil && s.Kind == kind
}

func (s *Status) Error() string {
	return fmt.Sprintf("%s Code: (%d) %s. Description: %s", s.Kind.String(), s.Code, s.codeString(), s.Message)
}

func (s *Status) codeString() string {
	if s.Kind == TransportError || s.Kind == RegistrationFailed {
		if s.Code >= 100 {
			return fmt.Sprintf("HTTP %d", s.Code)
		}
	}
	return ToSDKStatusCode(s.Code).String()
}

// New returns a Status with the given parameters
func New(kind Kind, code int32, msg string, details []interface{}) *Status {
	return &Status{Kind: kind, Code: code, Message: msg, Details: details}
}

// Newf returns a Status with a formatted message and no details
func Newf(kind Kind, code Code, format string, args ...interface{}) *Status {
	return New(kind, code.ToInt32(), fmt.Sprintf(format, args...), nil)
}

// NewFromHTTPResponse creates a TransportError status from a non-success
// HTTP response. The body, when present, is kept in Details.
func NewFromHTTPResponse(statusCode int, body []byte) *Status {
	var details []interface{}
	if len(body) > 0 {
		details = append(details, string(body))
	}
	return New(TransportError, int32(statusCode), fmt.Sprintf("peer returned HTTP status %d", statusCode), details)
}
