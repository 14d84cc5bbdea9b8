/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/test/mockfab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPeers = []fab.PeerConfig{
	{ID: "6fd2f1a3-b1c4_vp0", APIHost: "peer0.example.com", APIPort: 443, APIURL: "https://peer0.example.com:443"},
	{ID: "6fd2f1a3-b1c4_vp1", APIHost: "peer1.example.com", APIPort: 80, APIURL: "http://peer1.example.com:80"},
}

func TestFromPeerConfig(t *testing.T) {
	d := FromPeerConfig(testPeers[0])
	assert.Equal(t, "vp0-peer0.example.com:443", d.Name)
	assert.True(t, d.SSL)
	assert.Equal(t, fab.Target{Host: "peer0.example.com", Port: 443, SSL: true}, d.Target())

	d = FromPeerConfig(testPeers[1])
	assert.Equal(t, "vp1-peer1.example.com:80", d.Name)
	assert.False(t, d.SSL)

	d = FromPeerConfig(fab.PeerConfig{ID: "a_b_vp2", APIHost: "h", APIPort: 1})
	assert.Equal(t, "vp2-h:1", d.Name)

	d = FromPeerConfig(fab.PeerConfig{ID: "plain", APIHost: "h", APIPort: 1})
	assert.Equal(t, "plain-h:1", d.Name)
}

func TestRegisterNetworkSelectsFirstPeer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.NewMockTransport(mockCtrl)
	transport.EXPECT().Configure(fab.Target{Host: "peer0.example.com", Port: 443, SSL: true})

	r := NewRegistry(transport)
	require.NoError(t, r.RegisterNetwork(testPeers))

	index, selected, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, index)
	assert.Equal(t, "vp0-peer0.example.com:443", selected.Name)
	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Peers(), 2)
}

func TestRegisterNetworkInvalid(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	r := NewRegistry(mockfab.NewMockTransport(mockCtrl))

	err := r.RegisterNetwork(nil)
	assert.True(t, status.IsKind(err, status.InvalidNetworkConfig))

	err = r.RegisterNetwork([]fab.PeerConfig{{ID: "x"}})
	require.True(t, status.IsKind(err, status.InvalidNetworkConfig))
	s, _ := status.FromError(err)
	assert.Len(t, s.Details, 2)

	_, _, ok := r.Selected()
	assert.False(t, ok)
}

func TestSwitch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	transport := mockfab.NewMockTransport(mockCtrl)
	gomock.InOrder(
		transport.EXPECT().Configure(fab.Target{Host: "peer0.example.com", Port: 443, SSL: true}),
		transport.EXPECT().Configure(fab.Target{Host: "peer1.example.com", Port: 80}),
	)

	r := NewRegistry(transport)
	require.NoError(t, r.RegisterNetwork(testPeers))

	assert.True(t, r.Switch(1))
	index, _, _ := r.Selected()
	assert.Equal(t, 1, index)

	// out of range leaves the target untouched; no further Configure is expected
	assert.False(t, r.Switch(2))
	assert.False(t, r.Switch(-1))
	index, _, _ = r.Selected()
	assert.Equal(t, 1, index)
}

func TestBindIdentity(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	r := NewRegistry(mockfab.DefaultMockTransport(mockCtrl))
	require.NoError(t, r.RegisterNetwork(testPeers))

	assert.Empty(t, r.Identity())
	require.NoError(t, r.BindIdentity(0, "alice"))
	require.NoError(t, r.BindIdentity(0, "bob"))
	assert.Equal(t, "bob", r.Identity())

	p, ok := r.Peer(1)
	require.True(t, ok)
	assert.Empty(t, p.Identity)

	err := r.BindIdentity(5, "carol")
	assert.True(t, status.IsKind(err, status.InputValidation))

	_, ok = r.Peer(5)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	r := NewRegistry(mockfab.DefaultMockTransport(mockCtrl))
	saved := []fab.PeerDescriptor{FromPeerConfig(testPeers[1])}
	saved[0].Identity = "dave"

	require.NoError(t, r.Restore(saved))
	assert.Equal(t, "dave", r.Identity())

	assert.True(t, status.IsKind(r.Restore(nil), status.InvalidNetworkConfig))
}
