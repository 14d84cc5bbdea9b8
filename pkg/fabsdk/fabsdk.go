/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fabsdk enables client usage of a chaincode deployed on a peer
// network. An SDK instance is an independent session: it owns the peer
// registry, the transport, the chaincode client and the block height
// monitor, so several sessions may coexist in one process.
//
//  Basic Flow:
//  1) Create the SDK from a config provider
//  2) Load the network and chaincode
//  3) Call the chaincode, monitor the block height
//  4) Close the SDK
package fabsdk

import (
	"net/http"

	"github.com/ibm-blockchain/ibc-go/pkg/client/chaincode"
	"github.com/ibm-blockchain/ibc-go/pkg/client/event"
	"github.com/ibm-blockchain/ibc-go/pkg/client/ledger"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/core"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/core/config"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/ccscanner"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/ccsource"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/peer"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/rest"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk/metrics"
	"github.com/ibm-blockchain/ibc-go/pkg/msp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = logging.NewLogger("ibc/sdk")

// SDK provides access to the clients of one chaincode session
type SDK struct {
	config *config.SDKConfig

	transport       fab.Transport
	httpClient      *http.Client
	discoverer      ccscanner.Discoverer
	metricsProvider metrics.Provider

	registry  *peer.Registry
	identity  *msp.IdentityManager
	ledger    *ledger.Client
	monitor   *event.Monitor
	chaincode *chaincode.Client
	fetcher   *ccsource.Fetcher
	scanner   *ccscanner.Scanner
}

// Option configures the SDK
type Option func(sdk *SDK) error

// WithTransport replaces the REST transport used to reach the peers
func WithTransport(transport fab.Transport) Option {
	return func(sdk *SDK) error {
		sdk.transport = transport
		return nil
	}
}

// WithHTTPClient sets the HTTP client of the default transport and of the archive download
func WithHTTPClient(client *http.Client) Option {
	return func(sdk *SDK) error {
		sdk.httpClient = client
		return nil
	}
}

// WithDiscoverer replaces the entry point discovery of the source scanner
func WithDiscoverer(discoverer ccscanner.Discoverer) Option {
	return func(sdk *SDK) error {
		sdk.discoverer = discoverer
		return nil
	}
}

// WithMetricsProvider sets the provider of the SDK metrics
func WithMetricsProvider(p metrics.Provider) Option {
	return func(sdk *SDK) error {
		sdk.metricsProvider = p
		return nil
	}
}

// WithMetricsRegisterer registers the SDK metrics with the given prometheus registerer
func WithMetricsRegisterer(r prometheus.Registerer) Option {
	return func(sdk *SDK) error {
		if r == nil {
			return errors.New("metrics registerer is nil")
		}
		sdk.metricsProvider = metrics.NewPrometheusProvider(r)
		return nil
	}
}

// New initializes the SDK from the given config provider and options
func New(configProvider core.ConfigProvider, opts ...Option) (*SDK, error) {
	backends, err := configProvider()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize configuration")
	}
	cfg, err := config.New(backends...)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize configuration")
	}

	sdk := SDK{
		config:          cfg,
		metricsProvider: metrics.DisabledProvider{},
	}
	for _, option := range opts {
		if err := option(&sdk); err != nil {
			return nil, errors.WithMessage(err, "Error in option passed to New")
		}
	}

	if err := sdk.initialize(); err != nil {
		return nil, err
	}
	return &sdk, nil
}

func (sdk *SDK) initialize() error {
	clientCfg := sdk.config.Client()

	if sdk.transport == nil {
		restOpts := []rest.Option{rest.WithTimeout(sdk.config.Timeout(core.PeerRequest))}
		if sdk.httpClient != nil {
			restOpts = append(restOpts, rest.WithHTTPClient(sdk.httpClient))
		}
		sdk.transport = rest.New(restOpts...)
	}

	sdk.registry = peer.NewRegistry(sdk.transport)
	sdk.ledger = ledger.New(sdk.transport)

	identity, err := msp.NewIdentityManager(sdk.transport, sdk.registry, msp.WithUserFilter(clientCfg.UserFilter))
	if err != nil {
		return errors.WithMessage(err, "failed to initialize identity manager")
	}
	sdk.identity = identity

	sdk.monitor = event.New(sdk.ledger,
		event.WithFastInterval(clientCfg.Monitor.FastInterval),
		event.WithSlowInterval(clientCfg.Monitor.SlowInterval),
		event.WithFreshness(clientCfg.Monitor.Freshness),
		event.WithHealthWindow(clientCfg.Monitor.HealthWindow),
		event.WithMetrics(sdk.metricsProvider),
	)

	sdk.chaincode = chaincode.New(sdk.transport, sdk.registry,
		chaincode.WithTracker(sdk.monitor),
		chaincode.WithChainStats(sdk.ledger),
		chaincode.WithMetrics(sdk.metricsProvider),
		chaincode.WithTempDir(clientCfg.TempDir),
		chaincode.WithDeployTimeout(sdk.config.Timeout(core.Deploy)),
		chaincode.WithSettleDelay(sdk.config.Timeout(core.DeploySettle)),
		chaincode.WithReadyTimeout(sdk.config.Timeout(core.DeployReady)),
	)

	fetcherOpts := []ccsource.Option{ccsource.WithTimeout(sdk.config.Timeout(core.ArchiveDownload))}
	if sdk.httpClient != nil {
		fetcherOpts = append(fetcherOpts, ccsource.WithHTTPClient(sdk.httpClient))
	}
	sdk.fetcher = ccsource.New(clientCfg.TempDir, fetcherOpts...)

	if sdk.discoverer == nil {
		discoverer, err := ccscanner.NewRegexpDiscoverer(clientCfg.EntryPoint.Type, clientCfg.EntryPoint.Function)
		if err != nil {
			return errors.WithMessage(err, "failed to initialize source scanner")
		}
		sdk.discoverer = discoverer
	}
	sdk.scanner = ccscanner.New(sdk.discoverer)

	return nil
}

// Config returns the configuration of the SDK
func (sdk *SDK) Config() *config.SDKConfig {
	return sdk.config
}

// Chaincode returns the chaincode client
func (sdk *SDK) Chaincode() *chaincode.Client {
	return sdk.chaincode
}

// Monitor returns the block height monitor
func (sdk *SDK) Monitor() *event.Monitor {
	return sdk.monitor
}

// Peers returns the peer registry
func (sdk *SDK) Peers() *peer.Registry {
	return sdk.registry
}

// Close stops the block height monitor
func (sdk *SDK) Close() {
	sdk.monitor.Stop()
}
