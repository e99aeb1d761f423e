// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Fluent Bit Go Plugin SDK Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package output

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
)

const metricsNamespace = "flb_go_output"

type metrics struct {
	flushes       *prometheus.CounterVec
	flushBytes    prometheus.Counter
	flushDuration prometheus.Histogram
	exits         *prometheus.CounterVec
	instances     prometheus.Gauge
	violations    *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "flushes_total",
			Help:      "Number of chunks flushed, by result.",
		}, []string{"result"}),
		flushBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "flush_bytes_total",
			Help:      "Number of payload bytes passed to flush.",
		}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "flush_duration_seconds",
			Help:      "Time spent in the flush callback of the plugin.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		exits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "exits_total",
			Help:      "Number of instances finalized, by result.",
		}, []string{"result"}),
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "instances",
			Help:      "Number of live plugin instances.",
		}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "protocol_violations_total",
			Help:      "Number of host calls rejected before reaching the plugin, by entry point.",
		}, []string{"call"}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.flushes, m.flushBytes, m.flushDuration, m.exits, m.instances, m.violations}
}

// register adds the metrics to r with a constant plugin label.
func (m *metrics) register(r prometheus.Registerer, plugin string) error {
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"plugin": plugin}, r)
	for _, c := range m.collectors() {
		if err := wrapped.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func resultLabel(code int) string {
	switch code {
	case flb.FLBOk:
		return "ok"
	case flb.FLBRetry:
		return "retry"
	default:
		return "error"
	}
}

func (m *metrics) observeFlush(code int, size int, elapsed time.Duration) {
	m.flushes.WithLabelValues(resultLabel(code)).Inc()
	m.flushBytes.Add(float64(size))
	m.flushDuration.Observe(elapsed.Seconds())
}

func (m *metrics) observeExit(code int) {
	m.exits.WithLabelValues(resultLabel(code)).Inc()
	m.instances.Dec()
}
