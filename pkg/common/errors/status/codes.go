/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"
)

// Code represents a status code
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// UnknownCode represents status codes that are uncategorized or unknown to the SDK
	UnknownCode Code = 1

	// ConnectionFailed is returned when a network connection attempt from the SDK fails
	ConnectionFailed Code = 2

	// Timeout operation timed out
	Timeout Code = 5

	// MultipleErrors multiple errors occurred
	MultipleErrors Code = 7

	// ChaincodeNotReady the deployed chaincode has not been observed on the ledger yet
	ChaincodeNotReady Code = 25

	// BadRequest invalid input, mirrors HTTP 400
	BadRequest Code = 400

	// PreconditionFailed mirrors HTTP 412
	PreconditionFailed Code = 412

	// InternalError mirrors HTTP 500
	InternalError Code = 500
)

// CodeName maps the codes in this packages to human-readable strings
var CodeName = map[int32]string{
	0:   "OK",
	1:   "UNKNOWN",
	2:   "CONNECTION_FAILED",
	5:   "TIMEOUT",
	7:   "MULTIPLE_ERRORS",
	25:  "CHAINCODE_NOT_READY",
	400: "BAD_REQUEST",
	412: "PRECONDITION_FAILED",
	500: "INTERNAL_ERROR",
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}

// String representation of the code
func (c Code) String() string {
	if s, ok := CodeName[c.ToInt32()]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ToSDKStatusCode cast to ibc-go status code
func ToSDKStatusCode(c int32) Code {
	return Code(c)
}
