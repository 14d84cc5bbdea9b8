/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hyperledger/fabric-lib-go/healthz"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fabsdk"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 5 * time.Second

func runMonitor(ctx context.Context, env *environment, args []string) error {
	flags := pflag.NewFlagSet("monitor", pflag.ContinueOnError)
	listen := flags.String("listen", "127.0.0.1:9443", "address of the /metrics and /healthz endpoints, empty to disable")
	if err := flags.Parse(args); err != nil {
		return usageError(err.Error())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	if _, err := env.load(ctx, fabsdk.WithMetricsRegisterer(registry)); err != nil {
		return err
	}
	sdk := env.sdk

	if *listen != "" {
		server, addr, err := serveOperations(*listen, registry, sdk.Monitor())
		if err != nil {
			return err
		}
		fmt.Fprintf(env.out, "serving /metrics and /healthz on %s\n", addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	err := sdk.MonitorBlockHeight(ctx, func(stats *fab.ChainStats) {
		fmt.Fprintf(env.out, "new block, height %d, current block hash %s\n", stats.Height, stats.CurrentBlockHash)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

// serveOperations serves the metrics of registry and the health of checker
func serveOperations(addr string, registry *prometheus.Registry, checker healthz.HealthChecker) (*http.Server, net.Addr, error) {
	health := healthz.NewHealthHandler()
	if err := health.RegisterChecker("monitor", checker); err != nil {
		return nil, nil, errors.Wrap(err, "registering health checker failed")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", health)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listening on %s failed", addr)
	}

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	return server, listener.Addr(), nil
}
