/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/retry"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/test/mockfab"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/keyvaluestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newName = "b8e12f9a0c7d4e3f5a6b"

var testRetry = retry.Opts{
	InitialBackoff: time.Millisecond,
	MaxBackoff:     5 * time.Millisecond,
	BackoffFactor:  2,
}

func newDeployClient(t *testing.T, transport fab.Transport, stats fab.ChainStatsProvider, opts ...Option) *Client {
	opts = append([]Option{
		WithChainStats(stats),
		WithSettleDelay(20 * time.Millisecond),
		WithReadyTimeout(time.Second),
		WithRetry(testRetry),
	}, opts...)

	c := New(transport, newRegistry(t, transport), opts...)
	c.Configure(fab.ChaincodeConfig{
		ZipURL:   "https://example.com/marbles.zip",
		UnzipDir: "marbles/chaincode",
		GitURL:   "https://github.com/example/marbles/chaincode",
	})
	return c
}

func expectDeploy(transport *mockfab.MockTransport, reply fab.Response) {
	transport.EXPECT().
		Post(gomock.Any(), fab.DeployPath, fab.ChaincodeSpec{
			Type:          fab.ChaincodeTypeGolang,
			ChaincodeID:   fab.ChaincodeID{Path: "https://github.com/example/marbles/chaincode"},
			CtorMsg:       fab.ChaincodeInput{Function: "init", Args: []string{"99"}},
			SecureContext: "user_type1_0",
		}, gomock.Any()).
		DoAndReturn(mockfab.PostReply(reply))
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "chaincode")
	require.NoError(t, err)
	return dir
}

func TestDeployUpdatesNameAndWaitsForGrowth(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	expectDeploy(transport, fab.Response{OK: "success", Message: newName})

	stats := mockfab.NewMockChainStatsProvider(mockCtrl)
	gomock.InOrder(
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 3}, nil),
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 3}, nil).Times(2),
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 4}, nil),
	)

	temp := tempDir(t)
	defer os.RemoveAll(temp)
	save := tempDir(t)
	defer os.RemoveAll(save)

	c := newDeployClient(t, transport, stats, WithTempDir(temp))

	start := time.Now()
	resp, err := c.Deploy(context.Background(), "init", []string{"99"}, save)
	require.NoError(t, err)

	assert.True(t, time.Since(start) >= 20*time.Millisecond, "deploy completed before the settle delay")
	assert.Equal(t, newName, resp.Name)
	assert.True(t, resp.Ready)
	assert.Equal(t, newName, c.DeployedName())

	for _, dir := range []string{temp, save} {
		details, err := keyvaluestore.ReadDetails(filepath.Join(dir, newName+".json"))
		require.NoError(t, err)
		assert.Equal(t, newName, details.DeployedName)
		assert.Equal(t, "user_type1_0", details.Peers[0].Identity)
	}
}

func TestDeployReplacesStaleTempDetails(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	expectDeploy(transport, fab.Response{OK: "success", Message: newName})

	stats := mockfab.NewMockChainStatsProvider(mockCtrl)
	gomock.InOrder(
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 3}, nil),
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 4}, nil),
	)

	temp := tempDir(t)
	defer os.RemoveAll(temp)

	c := newDeployClient(t, transport, stats, WithTempDir(temp))
	undeployed := c.Details()
	_, err := keyvaluestore.SaveDetails(temp, &undeployed)
	require.NoError(t, err)

	_, err = c.Deploy(context.Background(), "init", []string{"99"}, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(temp, keyvaluestore.DefaultDetailsFile))
	assert.True(t, os.IsNotExist(err), "descriptor of the undeployed chaincode must be removed")
	_, err = keyvaluestore.ReadDetails(filepath.Join(temp, newName+".json"))
	assert.NoError(t, err)
}

func TestDeployNotReadyWhenChainDoesNotGrow(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	expectDeploy(transport, fab.Response{OK: "success", Message: newName})

	stats := mockfab.NewMockChainStatsProvider(mockCtrl)
	stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 3}, nil).MinTimes(2)

	c := newDeployClient(t, transport, stats, WithReadyTimeout(50*time.Millisecond))

	resp, err := c.Deploy(context.Background(), "init", []string{"99"}, "")
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
	assert.False(t, resp.Ready)
	assert.Equal(t, newName, c.DeployedName())
}

func TestDeployFailureKeepsName(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	transport.EXPECT().
		Post(gomock.Any(), fab.DeployPath, gomock.Any(), gomock.Any()).
		Return(status.NewFromHTTPResponse(500, []byte("build failed")))

	stats := mockfab.NewMockChainStatsProvider(mockCtrl)
	stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 3}, nil)

	c := newDeployClient(t, transport, stats)
	c.SetDeployedName(deployedName)

	_, err := c.Deploy(context.Background(), "init", []string{"99"}, "")
	require.Error(t, err)
	assert.True(t, status.IsKind(err, status.TransportError))
	assert.Equal(t, deployedName, c.DeployedName())
}

func TestDeployRequiresGitURL(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	c := New(transport, newRegistry(t, transport))

	_, err := c.Deploy(context.Background(), "init", nil, "")
	assert.True(t, status.IsKind(err, status.InputValidation))
}

func TestDeployAsync(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.DefaultMockTransport(mockCtrl)
	expectDeploy(transport, fab.Response{OK: "success", Message: newName})

	stats := mockfab.NewMockChainStatsProvider(mockCtrl)
	gomock.InOrder(
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 0}, nil),
		stats.EXPECT().ChainStats(gomock.Any()).Return(&fab.ChainStats{Height: 1}, nil),
	)

	c := newDeployClient(t, transport, stats)

	future := c.DeployAsync(context.Background(), "init", []string{"99"}, "")
	value, err := future.Get()
	require.NoError(t, err)
	resp := value.(*DeployResponse)
	assert.Equal(t, newName, resp.Name)
	assert.True(t, resp.Ready)
}
