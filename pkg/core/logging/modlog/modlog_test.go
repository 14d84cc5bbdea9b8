/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"bytes"
	"testing"

	"github.com/ibm-blockchain/ibc-go/pkg/core/logging/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for i, name := range []string{"critical", "ERROR", "Warning", "info", "debug"} {
		level, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, api.Level(i), level)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "UNKNOWN", ParseString(api.Level(42)))
}

func TestModuleLevels(t *testing.T) {
	const module = "modlog-test"
	assert.Equal(t, api.INFO, GetLevel(module))

	SetLevel(module, api.DEBUG)
	assert.True(t, IsEnabledFor(module, api.DEBUG))

	SetLevel(module, api.WARNING)
	assert.False(t, IsEnabledFor(module, api.INFO))
	assert.True(t, IsEnabledFor(module, api.ERROR))
}

func TestLoggerOutput(t *testing.T) {
	const module = "modlog-output"
	buf := &bytes.Buffer{}
	logger := LoggerProviderWithOutput(buf).GetLogger(module)

	SetLevel(module, api.INFO)
	logger.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Infof("shown %d", 2)
	assert.Contains(t, buf.String(), "[modlog-output]")
	assert.Contains(t, buf.String(), "INFO shown 2")

	buf.Reset()
	logger.Error("boom")
	assert.Contains(t, buf.String(), "ERRO boom")
}
