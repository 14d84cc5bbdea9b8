/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rest is the JSON over HTTP transport used to reach a peer's REST API.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
	"golang.org/x/net/context/ctxhttp"
)

var logger = logging.NewLogger("ibc/fab")

const (
	defaultTimeout = time.Second * 60
	contentType    = "application/json"
	maxErrorBody   = 64 * 1024
)

// Client is a fab.Transport backed by net/http. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration

	mutex  sync.RWMutex
	target fab.Target
}

// Option configures the client
type Option func(c *Client)

// WithTimeout sets the timeout applied to requests whose context has no deadline
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTLSConfig sets the TLS configuration used for https targets
func WithTLSConfig(config *tls.Config) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: config,
		}}
	}
}

// New returns a REST transport with no default target
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure sets the default target
func (c *Client) Configure(target fab.Target) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	logger.Debugf("transport target set to %s", target.URL())
	c.target = target
}

// Target returns the default target
func (c *Client) Target() fab.Target {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.target
}

// Get issues a GET against the default target
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	target := c.Target()
	if target.IsZero() {
		return noTarget()
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	url := target.URL() + path
	logger.Debugf("GET %s", url)

	resp, err := ctxhttp.Get(ctx, c.httpClient, url)
	if err != nil {
		return transportError(ctx, err, url)
	}
	return handleResponse(resp, result)
}

// Post issues a POST against the default target
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	target := c.Target()
	if target.IsZero() {
		return noTarget()
	}
	return c.PostTo(ctx, target, path, body, result)
}

// PostTo issues a POST against the given target
func (c *Client) PostTo(ctx context.Context, target fab.Target, path string, body interface{}, result interface{}) error {
	if target.IsZero() {
		return noTarget()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return status.New(status.InputValidation, status.BadRequest.ToInt32(), errors.Wrap(err, "marshal of request body failed").Error(), nil)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	url := target.URL() + path
	logger.Debugf("POST %s", url)

	resp, err := ctxhttp.Post(ctx, c.httpClient, url, contentType, bytes.NewReader(payload))
	if err != nil {
		return transportError(ctx, err, url)
	}
	return handleResponse(resp, result)
}

// withTimeout applies the client timeout unless ctx already carries a deadline
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func handleResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Debugf("peer returned HTTP status %d: %s", resp.StatusCode, body)
		return status.NewFromHTTPResponse(resp.StatusCode, body)
	}

	if result == nil {
		return nil
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return status.New(status.TransportError, status.ConnectionFailed.ToInt32(), errors.Wrap(err, "reading response body failed").Error(), nil)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return status.New(status.TransportError, int32(resp.StatusCode), errors.Wrap(err, "response is not valid JSON").Error(), []interface{}{string(body)})
	}
	return nil
}

func transportError(ctx context.Context, err error, url string) error {
	if ctx.Err() == context.DeadlineExceeded {
		return status.Newf(status.TransportError, status.Timeout, "request to %s timed out", url)
	}
	if netErr, ok := errors.Cause(err).(net.Error); ok && netErr.Timeout() {
		return status.Newf(status.TransportError, status.Timeout, "request to %s timed out", url)
	}
	if ctx.Err() == context.Canceled {
		return errors.Wrapf(ctx.Err(), "request to %s cancelled", url)
	}
	return status.New(status.TransportError, status.ConnectionFailed.ToInt32(), errors.Wrapf(err, "request to %s failed", url).Error(), nil)
}

func noTarget() error {
	return status.Newf(status.NotReady, status.PreconditionFailed, "no peer configured, register the network first")
}
