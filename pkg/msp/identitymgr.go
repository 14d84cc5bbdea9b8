/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package msp enrolls users on peers through the registrar endpoint and keeps
// track of the identity bound to each peer.
package msp

import (
	"context"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/multi"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("ibc/msp")

// PeerRegistry is the subset of the peer registry needed to bind identities
type PeerRegistry interface {
	Peer(index int) (fab.PeerDescriptor, bool)
	BindIdentity(index int, enrollID string) error
	Len() int
}

// IdentityManager registers users on peers
type IdentityManager struct {
	transport fab.Transport
	registry  PeerRegistry
	filter    *UserFilter
}

// Option configures the identity manager
type Option func(m *IdentityManager) error

// WithUserFilter restricts RegisterUsers to the users matching expr
func WithUserFilter(expr string) Option {
	return func(m *IdentityManager) error {
		filter, err := NewUserFilter(expr)
		if err != nil {
			return err
		}
		m.filter = filter
		return nil
	}
}

// NewIdentityManager creates a new instance of IdentityManager
func NewIdentityManager(transport fab.Transport, registry PeerRegistry, opts ...Option) (*IdentityManager, error) {
	m := &IdentityManager{
		transport: transport,
		registry:  registry,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, errors.WithMessage(err, "identity manager option failed")
		}
	}
	return m, nil
}

// Register enrolls enrollID on the peer at peerIndex. The request goes to that
// peer regardless of the selected one. On success the identity is bound to
// the peer, replacing any previous binding.
func (m *IdentityManager) Register(ctx context.Context, peerIndex int, enrollID, enrollSecret string) error {
	if enrollID == "" {
		return status.Newf(status.InputValidation, status.BadRequest, "enrollment ID is required")
	}
	p, ok := m.registry.Peer(peerIndex)
	if !ok {
		return status.Newf(status.InputValidation, status.BadRequest, "peer index %d out of range", peerIndex)
	}

	logger.Debugf("registering %s on %s", enrollID, p.Name)

	req := fab.EnrollRequest{EnrollID: enrollID, EnrollSecret: enrollSecret}
	var resp fab.Response
	if err := m.transport.PostTo(ctx, p.Target(), fab.RegistrarPath, req, &resp); err != nil {
		logger.Warnf("Registration of %s on %s failed: %s", enrollID, p.Name, err)
		return registrationFailed(enrollID, p.Name, err)
	}

	if err := m.registry.BindIdentity(peerIndex, enrollID); err != nil {
		return err
	}
	logger.Infof("Registration success: %s", enrollID)
	return nil
}

// RegisterUsers registers the configured users, after filtering, on every
// peer that has a matching user slot: for peer i with i < len(users), every
// user is registered on peer i in order. All failures are reported together.
func (m *IdentityManager) RegisterUsers(ctx context.Context, users []fab.UserConfig) error {
	users, err := m.filter.Apply(users)
	if err != nil {
		return err
	}
	logger.Infof("Commence registering users: #%d", len(users))

	var errs error
	for i := 0; i < m.registry.Len() && i < len(users); i++ {
		for _, user := range users {
			if err := m.Register(ctx, i, user.Username, user.Secret); err != nil {
				errs = multi.Append(errs, err)
			}
		}
	}
	return errs
}

func registrationFailed(enrollID, peerName string, err error) error {
	code := status.UnknownCode.ToInt32()
	var details []interface{}
	if s, ok := status.FromError(err); ok {
		code = s.Code
		details = s.Details
	}
	return status.New(status.RegistrationFailed, code, errors.WithMessagef(err, "registration of %s on %s failed", enrollID, peerName).Error(), details)
}
