/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package multi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.Nil(t, New())
	assert.Nil(t, New(nil, nil))

	single := errors.New("one")
	assert.Equal(t, single, New(nil, single))

	err := New(errors.New("one"), errors.New("two"))
	m, ok := err.(Errors)
	assert.True(t, ok)
	assert.Len(t, m, 2)
	assert.Equal(t, "Multiple errors occurred: - one - two", err.Error())
}

func TestAppend(t *testing.T) {
	var err error
	err = Append(err, errors.New("one"))
	assert.Equal(t, "one", err.Error())

	err = Append(err, errors.New("two"))
	err = Append(err, nil)
	err = Append(err, errors.New("three"))
	m, ok := err.(Errors)
	assert.True(t, ok)
	assert.Equal(t, []string{"one", "two", "three"}, m.Messages())
}
