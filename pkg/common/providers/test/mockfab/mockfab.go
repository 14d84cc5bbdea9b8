/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mockfab

import (
	"context"
	"encoding/json"

	"github.com/golang/mock/gomock"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
)

// DefaultTarget is the target reported by DefaultMockTransport
var DefaultTarget = fab.Target{Host: "peer0.example.com", Port: 7050}

// DefaultMockTransport returns a transport mock that tolerates
// (re)configuration and reports DefaultTarget
func DefaultMockTransport(mockCtrl *gomock.Controller) *MockTransport {
	transport := NewMockTransport(mockCtrl)
	transport.EXPECT().Configure(gomock.Any()).AnyTimes()
	transport.EXPECT().Target().Return(DefaultTarget).AnyTimes()
	return transport
}

// GetReply is a DoAndReturn action for Get that decodes value into the result
func GetReply(value interface{}) func(context.Context, string, interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return copyJSON(value, result)
	}
}

// PostReply is a DoAndReturn action for Post that decodes value into the result
func PostReply(value interface{}) func(context.Context, string, interface{}, interface{}) error {
	return func(_ context.Context, _ string, _ interface{}, result interface{}) error {
		return copyJSON(value, result)
	}
}

// PostToReply is a DoAndReturn action for PostTo that decodes value into the result
func PostToReply(value interface{}) func(context.Context, fab.Target, string, interface{}, interface{}) error {
	return func(_ context.Context, _ fab.Target, _ string, _ interface{}, result interface{}) error {
		return copyJSON(value, result)
	}
}

func copyJSON(value interface{}, result interface{}) error {
	if result == nil {
		return nil
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, result)
}
