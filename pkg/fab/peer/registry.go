/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package peer

import (
	"sync"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/multi"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/fab")

// Registry holds the registered peers and the selected one.
// The transport is retargeted whenever the selection changes.
type Registry struct {
	transport fab.Transport

	mutex    sync.RWMutex
	peers    []fab.PeerDescriptor
	selected int
}

// NewRegistry returns an empty registry driving the given transport
func NewRegistry(transport fab.Transport) *Registry {
	return &Registry{transport: transport}
}

// RegisterNetwork replaces the peer list with the given peers and selects the first one
func (r *Registry) RegisterNetwork(peers []fab.PeerConfig) error {
	if err := validate(peers); err != nil {
		return err
	}

	descriptors := make([]fab.PeerDescriptor, len(peers))
	for i, p := range peers {
		descriptors[i] = FromPeerConfig(p)
		logger.Infof("Peer: %s", descriptors[i].Name)
	}

	r.install(descriptors)
	return nil
}

// Restore re-installs peers read back from a saved chaincode descriptor,
// bound identities included
func (r *Registry) Restore(peers []fab.PeerDescriptor) error {
	if len(peers) == 0 {
		return status.Newf(status.InvalidNetworkConfig, status.BadRequest, "saved descriptor has no peers")
	}
	descriptors := make([]fab.PeerDescriptor, len(peers))
	copy(descriptors, peers)
	r.install(descriptors)
	return nil
}

func (r *Registry) install(descriptors []fab.PeerDescriptor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.peers = descriptors
	r.selected = 0
	r.transport.Configure(descriptors[0].Target())
}

func validate(peers []fab.PeerConfig) error {
	if len(peers) == 0 {
		return status.Newf(status.InvalidNetworkConfig, status.BadRequest, "network should be a non-empty list of peers")
	}

	var errs multi.Errors
	for i, p := range peers {
		if p.APIHost == "" {
			errs = append(errs, errors.Errorf("peer %d: api_host is required", i))
		}
		if p.APIPort <= 0 {
			errs = append(errs, errors.Errorf("peer %d: api_port must be a positive number", i))
		}
	}
	if len(errs) > 0 {
		var details []interface{}
		for _, msg := range errs.Messages() {
			details = append(details, msg)
		}
		return status.New(status.InvalidNetworkConfig, status.BadRequest.ToInt32(), errs.Error(), details)
	}
	return nil
}

// Switch retargets the transport to the peer at index. It returns false,
// leaving the selection unchanged, if the index is out of range.
func (r *Registry) Switch(index int) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if index < 0 || index >= len(r.peers) {
		return false
	}
	r.transport.Configure(r.peers[index].Target())
	r.selected = index
	logger.Debugf("switched to peer %s", r.peers[index].Name)
	return true
}

// Selected returns the index and descriptor of the selected peer.
// ok is false if no network has been registered.
func (r *Registry) Selected() (index int, peer fab.PeerDescriptor, ok bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if len(r.peers) == 0 {
		return 0, fab.PeerDescriptor{}, false
	}
	return r.selected, r.peers[r.selected], true
}

// Peers returns a copy of the registered peers
func (r *Registry) Peers() []fab.PeerDescriptor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	peers := make([]fab.PeerDescriptor, len(r.peers))
	copy(peers, r.peers)
	return peers
}

// Peer returns the peer at index
func (r *Registry) Peer(index int) (fab.PeerDescriptor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if index < 0 || index >= len(r.peers) {
		return fab.PeerDescriptor{}, false
	}
	return r.peers[index], true
}

// Len returns the number of registered peers
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.peers)
}

// BindIdentity sets the enrolled identity of the peer at index, replacing any previous one
func (r *Registry) BindIdentity(index int, enrollID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if index < 0 || index >= len(r.peers) {
		return status.Newf(status.InputValidation, status.BadRequest, "peer index %d out of range", index)
	}
	r.peers[index].Identity = enrollID
	return nil
}

// Identity returns the identity bound to the selected peer, empty if none
func (r *Registry) Identity() string {
	_, p, _ := r.Selected()
	return p.Identity
}
