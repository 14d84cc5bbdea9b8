/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package futurevalue delivers the result of an asynchronous SDK call.
package futurevalue

import (
	"context"
	"fmt"
	"sync"
)

// Initializer produces the value
type Initializer func() (interface{}, error)

// Value is the future result of an Initializer. The initializer runs once;
// any number of goroutines may wait on Get until it has completed.
// Regardless of whether it succeeds, the value cannot be initialized again.
type Value struct {
	initializer Initializer
	once        sync.Once
	done        chan struct{}
	value       interface{}
	err         error
}

// New returns a new future value
func New(initializer Initializer) *Value {
	return &Value{
		initializer: initializer,
		done:        make(chan struct{}),
	}
}

// Go returns a future value whose initializer is already running on its own goroutine
func Go(initializer Initializer) *Value {
	f := New(initializer)
	go f.Initialize()
	return f
}

// Initialize runs the initializer and publishes its result.
// Calls after the first return the published result.
func (f *Value) Initialize() (interface{}, error) {
	f.once.Do(func() {
		defer close(f.done)
		f.value, f.err = f.initializer()
	})
	<-f.done
	return f.value, f.err
}

// Get waits for the initializer and returns its value and error
func (f *Value) Get() (interface{}, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get bounded by ctx
func (f *Value) GetContext(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// MustGet returns the value. If an error resulted
// during initialization then this function will panic.
func (f *Value) MustGet() interface{} {
	value, err := f.Get()
	if err != nil {
		panic(fmt.Sprintf("get returned error: %s", err))
	}
	return value
}

// Done is closed once the value has been set
func (f *Value) Done() <-chan struct{} {
	return f.done
}

// IsSet returns true if the value has been set, otherwise false is returned
func (f *Value) IsSet() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
