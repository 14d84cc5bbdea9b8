/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package futurevalue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleGo() {
	fv := Go(func() (interface{}, error) {
		return "mycc123", nil
	})

	fmt.Println(fv.MustGet())
	// Output: mycc123
}

func TestGetWaitsForInitialize(t *testing.T) {
	fv := New(func() (interface{}, error) {
		return "Value1", nil
	})

	concurrency := 100
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			value, err := fv.Get()
			assert.NoError(t, err)
			assert.Equal(t, "Value1", value)
		}()
	}

	assert.False(t, fv.IsSet())
	value, err := fv.Initialize()
	require.NoError(t, err)
	assert.Equal(t, "Value1", value)

	wg.Wait()
	assert.True(t, fv.IsSet())
}

func TestInitializeRunsOnce(t *testing.T) {
	calls := 0
	fv := New(func() (interface{}, error) {
		calls++
		return calls, nil
	})

	fv.Initialize()
	value, _ := fv.Initialize()
	assert.Equal(t, 1, value)
	assert.Equal(t, 1, calls)
}

func TestGetWithError(t *testing.T) {
	fv := Go(func() (interface{}, error) {
		return nil, fmt.Errorf("some error")
	})

	<-fv.Done()
	_, err := fv.Get()
	assert.EqualError(t, err, "some error")
	assert.Panics(t, func() { fv.MustGet() })
}

func TestGetContext(t *testing.T) {
	release := make(chan struct{})
	fv := Go(func() (interface{}, error) {
		<-release
		return "late", nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := fv.GetContext(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)

	close(release)
	value, err := fv.GetContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", value)
}
