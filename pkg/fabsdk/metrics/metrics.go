/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	kitmetrics "github.com/go-kit/kit/metrics"
)

const namespace = "ibc"

var (
	queriesReceived = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "queries_received",
		Help:       "The number of chaincode queries received.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	queriesFailed = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "queries_failed",
		Help:       "The number of chaincode queries that failed (timeouts excluded).",
		LabelNames: []string{"chaincode", "fcn", "fail"},
	}
	queryTimeouts = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "query_timeouts",
		Help:       "The number of chaincode queries that have failed due to time out.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	queryDuration = HistogramOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "query_duration",
		Help:       "The time to complete a chaincode query.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	invocationsReceived = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "invocations_received",
		Help:       "The number of chaincode invocations and deploys received.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	invocationsFailed = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "invocations_failed",
		Help:       "The number of chaincode invocations and deploys that failed (timeouts excluded).",
		LabelNames: []string{"chaincode", "fcn", "fail"},
	}
	invocationTimeouts = CounterOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "invocation_timeouts",
		Help:       "The number of chaincode invocations and deploys that have failed due to time out.",
		LabelNames: []string{"chaincode", "fcn"},
	}
	invocationDuration = HistogramOpts{
		Namespace:  namespace,
		Subsystem:  "chaincode",
		Name:       "invocation_duration",
		Help:       "The time to complete a chaincode invocation or deploy.",
		LabelNames: []string{"chaincode", "fcn"},
	}

	heightChecks = CounterOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "height_checks",
		Help:      "The number of chain height checks issued.",
	}
	heightCheckFailures = CounterOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "height_check_failures",
		Help:      "The number of chain height checks that failed.",
	}
	newBlocks = CounterOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "new_blocks",
		Help:      "The number of chain height changes observed.",
	}
	resolvedActions = CounterOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "resolved_actions",
		Help:      "The number of pending actions resolved by a height change.",
	}
	evictedActions = CounterOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "evicted_actions",
		Help:      "The number of pending actions dropped unresolved after the freshness window.",
	}
	pendingActions = GaugeOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "pending_actions",
		Help:      "The number of actions awaiting a height change.",
	}
	ledgerHeight = GaugeOpts{
		Namespace: namespace,
		Subsystem: "monitor",
		Name:      "ledger_height",
		Help:      "The last observed chain height.",
	}
)

// ClientMetrics contains the metrics used by the chaincode client
type ClientMetrics struct {
	QueriesReceived     kitmetrics.Counter
	QueriesFailed       kitmetrics.Counter
	QueryDuration       kitmetrics.Histogram
	QueryTimeouts       kitmetrics.Counter
	InvocationsReceived kitmetrics.Counter
	InvocationsFailed   kitmetrics.Counter
	InvocationDuration  kitmetrics.Histogram
	InvocationTimeouts  kitmetrics.Counter
}

// NewClientMetrics builds a new instance of ClientMetrics
func NewClientMetrics(p Provider) *ClientMetrics {
	return &ClientMetrics{
		QueriesReceived:     p.NewCounter(queriesReceived),
		QueriesFailed:       p.NewCounter(queriesFailed),
		QueryDuration:       p.NewHistogram(queryDuration),
		QueryTimeouts:       p.NewCounter(queryTimeouts),
		InvocationsReceived: p.NewCounter(invocationsReceived),
		InvocationsFailed:   p.NewCounter(invocationsFailed),
		InvocationDuration:  p.NewHistogram(invocationDuration),
		InvocationTimeouts:  p.NewCounter(invocationTimeouts),
	}
}

// MonitorMetrics contains the metrics used by the block height monitor
type MonitorMetrics struct {
	HeightChecks        kitmetrics.Counter
	HeightCheckFailures kitmetrics.Counter
	NewBlocks           kitmetrics.Counter
	ResolvedActions     kitmetrics.Counter
	EvictedActions      kitmetrics.Counter
	PendingActions      kitmetrics.Gauge
	LedgerHeight        kitmetrics.Gauge
}

// NewMonitorMetrics builds a new instance of MonitorMetrics
func NewMonitorMetrics(p Provider) *MonitorMetrics {
	return &MonitorMetrics{
		HeightChecks:        p.NewCounter(heightChecks),
		HeightCheckFailures: p.NewCounter(heightCheckFailures),
		NewBlocks:           p.NewCounter(newBlocks),
		ResolvedActions:     p.NewCounter(resolvedActions),
		EvictedActions:      p.NewCounter(evictedActions),
		PendingActions:      p.NewGauge(pendingActions),
		LedgerHeight:        p.NewGauge(ledgerHeight),
	}
}
