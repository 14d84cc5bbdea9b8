/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTLSEnabled(t *testing.T) {
	assert.True(t, IsTLSEnabled("https://peer0:443"))
	assert.True(t, IsTLSEnabled("HTTPS://peer0:443"))
	assert.False(t, IsTLSEnabled("http://peer0:80"))
	assert.False(t, IsTLSEnabled("peer0:443/https"))
	assert.False(t, IsTLSEnabled(""))
}

func TestHasProtocol(t *testing.T) {
	assert.True(t, HasProtocol("http://peer0"))
	assert.False(t, HasProtocol("peer0:80"))
}
