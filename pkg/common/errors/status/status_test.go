/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"testing"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/multi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	s, ok := FromError(nil)
	require.True(t, ok)
	assert.Equal(t, OK.ToInt32(), s.Code)

	orig := New(TransportError, 404, "not found", []interface{}{"body"})
	s, ok = FromError(orig)
	require.True(t, ok)
	assert.Equal(t, orig, s)

	s, ok = FromError(errors.Wrap(orig, "reading chain stats"))
	require.True(t, ok)
	assert.Equal(t, TransportError, s.Kind)
	assert.EqualValues(t, 404, s.Code)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
}

func TestFromMultiError(t *testing.T) {
	m := multi.New(
		Newf(RegistrationFailed, 401, "user1 rejected"),
		Newf(RegistrationFailed, 401, "user2 rejected"),
	)
	s, ok := FromError(m)
	require.True(t, ok)
	assert.Equal(t, RegistrationFailed, s.Kind)
	assert.Equal(t, MultipleErrors.ToInt32(), s.Code)
	assert.Len(t, s.Details, 2)

	m = multi.New(Newf(RegistrationFailed, 401, "rejected"), errors.New("plain"))
	s, ok = FromError(m)
	require.True(t, ok)
	assert.Equal(t, Unknown, s.Kind)
}

func TestIsKind(t *testing.T) {
	err := errors.WithMessage(Newf(NotReady, PreconditionFailed, "no deployed name"), "read failed")
	assert.True(t, IsKind(err, NotReady))
	assert.False(t, IsKind(err, TransportError))
	assert.False(t, IsKind(nil, NotReady))
}

func TestStatusError(t *testing.T) {
	s := NewFromHTTPResponse(500, []byte(`{"Error":"boom"}`))
	assert.Equal(t, "TransportError Code: (500) HTTP 500. Description: peer returned HTTP status 500", s.Error())
	assert.Equal(t, []interface{}{`{"Error":"boom"}`}, s.Details)

	s = Newf(TransportError, Timeout, "deadline exceeded")
	assert.Equal(t, "TransportError Code: (5) TIMEOUT. Description: deadline exceeded", s.Error())

	s = Newf(InputValidation, BadRequest, "missing %s", "zip_url")
	assert.Equal(t, "InputValidation Code: (400) BAD_REQUEST. Description: missing zip_url", s.Error())
	assert.Equal(t, "Unknown", Kind(99).String())
}
