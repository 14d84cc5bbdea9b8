/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package msp

import (
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

// UserFilter selects the users to register with a boolean expression over
// the parameters "username" and "usertype", e.g. "usertype == 1 || usertype == 2".
// A nil filter keeps every user.
type UserFilter struct {
	expr *govaluate.EvaluableExpression
}

// NewUserFilter parses expr. An empty expression yields a nil filter.
func NewUserFilter(expr string) (*UserFilter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, status.New(status.InputValidation, status.BadRequest.ToInt32(), errors.Wrapf(err, "invalid user filter [%s]", expr).Error(), nil)
	}
	return &UserFilter{expr: e}, nil
}

// Match evaluates the filter for one user
func (f *UserFilter) Match(user fab.UserConfig) (bool, error) {
	if f == nil {
		return true, nil
	}
	// govaluate compares numbers as float64
	result, err := f.expr.Evaluate(map[string]interface{}{
		"username": user.Username,
		"usertype": float64(user.UserType),
	})
	if err != nil {
		return false, status.New(status.InputValidation, status.BadRequest.ToInt32(), errors.Wrapf(err, "user filter failed for %s", user.Username).Error(), nil)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, status.Newf(status.InputValidation, status.BadRequest, "user filter [%s] is not a boolean expression", f.expr.String())
	}
	return matched, nil
}

// Apply returns the users matching the filter, in order
func (f *UserFilter) Apply(users []fab.UserConfig) ([]fab.UserConfig, error) {
	if f == nil {
		return users, nil
	}
	var valid []fab.UserConfig
	for _, u := range users {
		ok, err := f.Match(u)
		if err != nil {
			return nil, err
		}
		if ok {
			valid = append(valid, u)
		}
	}
	return valid, nil
}
