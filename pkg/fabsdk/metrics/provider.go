/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	kitprom "github.com/go-kit/kit/metrics/prometheus"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/prometheus/client_golang/prometheus"
)

var logger = logging.NewLogger("ibc/sdk")

// CounterOpts describes a counter
type CounterOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	LabelNames []string
}

// GaugeOpts describes a gauge
type GaugeOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	LabelNames []string
}

// HistogramOpts describes a histogram
type HistogramOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	Buckets    []float64
	LabelNames []string
}

// Provider creates metric instruments
type Provider interface {
	NewCounter(CounterOpts) kitmetrics.Counter
	NewGauge(GaugeOpts) kitmetrics.Gauge
	NewHistogram(HistogramOpts) kitmetrics.Histogram
}

// PrometheusProvider registers instruments with a prometheus registerer
type PrometheusProvider struct {
	registerer prometheus.Registerer
}

// NewPrometheusProvider returns a provider registering with r. Instruments
// already registered with r, by another session for example, are shared.
func NewPrometheusProvider(r prometheus.Registerer) *PrometheusProvider {
	return &PrometheusProvider{registerer: r}
}

// register returns the collector registered under the descriptor of c,
// registering c if there is none. A conflicting registration leaves c
// unregistered.
func (p *PrometheusProvider) register(c prometheus.Collector) prometheus.Collector {
	err := p.registerer.Register(c)
	if err == nil {
		return c
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return are.ExistingCollector
	}
	logger.Warnf("metric not exported: %s", err)
	return c
}

// NewCounter creates and registers a counter
func (p *PrometheusProvider) NewCounter(o CounterOpts) kitmetrics.Counter {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.Namespace,
		Subsystem: o.Subsystem,
		Name:      o.Name,
		Help:      o.Help,
	}, o.LabelNames)
	if existing, ok := p.register(cv).(*prometheus.CounterVec); ok {
		cv = existing
	}
	return kitprom.NewCounter(cv)
}

// NewGauge creates and registers a gauge
func (p *PrometheusProvider) NewGauge(o GaugeOpts) kitmetrics.Gauge {
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: o.Namespace,
		Subsystem: o.Subsystem,
		Name:      o.Name,
		Help:      o.Help,
	}, o.LabelNames)
	if existing, ok := p.register(gv).(*prometheus.GaugeVec); ok {
		gv = existing
	}
	return kitprom.NewGauge(gv)
}

// NewHistogram creates and registers a histogram
func (p *PrometheusProvider) NewHistogram(o HistogramOpts) kitmetrics.Histogram {
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: o.Namespace,
		Subsystem: o.Subsystem,
		Name:      o.Name,
		Help:      o.Help,
		Buckets:   o.Buckets,
	}, o.LabelNames)
	if existing, ok := p.register(hv).(*prometheus.HistogramVec); ok {
		hv = existing
	}
	return kitprom.NewHistogram(hv)
}

// DisabledProvider hands out instruments that record nothing
type DisabledProvider struct{}

// NewCounter returns a discarding counter
func (DisabledProvider) NewCounter(CounterOpts) kitmetrics.Counter { return discard.NewCounter() }

// NewGauge returns a discarding gauge
func (DisabledProvider) NewGauge(GaugeOpts) kitmetrics.Gauge { return discard.NewGauge() }

// NewHistogram returns a discarding histogram
func (DisabledProvider) NewHistogram(HistogramOpts) kitmetrics.Histogram {
	return discard.NewHistogram()
}
