/*
Copyright 2024 Lobmap Authors. All rights reserved.

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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProtocolMetrics observes the outcome of deferred large-object operations.
type ProtocolMetrics interface {
	IncWrites(table, column string)
	IncWriteFailures(table, column string)
	IncRowsNotFound(table, column string)
	IncReads(column string)
	IncReadFailures(column string)
}

var (
	metricsLobWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lobmap_lob_writes_total",
		Help: "Number of completed deferred large-object writes",
	}, []string{"table", "column"})

	metricsLobWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lobmap_lob_write_failures_total",
		Help: "Number of failed deferred large-object writes",
	}, []string{"table", "column"})

	metricsLobRowsNotFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lobmap_lob_rows_not_found_total",
		Help: "Number of locking re-selects that matched no row",
	}, []string{"table", "column"})

	metricsLobReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lobmap_lob_reads_total",
		Help: "Number of completed large-object reads",
	}, []string{"column"})

	metricsLobReadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lobmap_lob_read_failures_total",
		Help: "Number of failed large-object reads",
	}, []string{"column"})
)

var _ ProtocolMetrics = &prometheusProtocolMetrics{}

type prometheusProtocolMetrics struct {
}

func NewProtocolMetrics() ProtocolMetrics {
	return &prometheusProtocolMetrics{}
}

func (m *prometheusProtocolMetrics) IncWrites(table, column string) {
	metricsLobWrites.WithLabelValues(table, column).Inc()
}

func (m *prometheusProtocolMetrics) IncWriteFailures(table, column string) {
	metricsLobWriteFailures.WithLabelValues(table, column).Inc()
}

func (m *prometheusProtocolMetrics) IncRowsNotFound(table, column string) {
	metricsLobRowsNotFound.WithLabelValues(table, column).Inc()
}

func (m *prometheusProtocolMetrics) IncReads(column string) {
	metricsLobReads.WithLabelValues(column).Inc()
}

func (m *prometheusProtocolMetrics) IncReadFailures(column string) {
	metricsLobReadFailures.WithLabelValues(column).Inc()
}

var _ ProtocolMetrics = &nopProtocolMetrics{}

type nopProtocolMetrics struct {
}

func NewNopProtocolMetrics() ProtocolMetrics {
	return &nopProtocolMetrics{}
}

func (m *nopProtocolMetrics) IncWrites(table, column string) {
}

func (m *nopProtocolMetrics) IncWriteFailures(table, column string) {
}

func (m *nopProtocolMetrics) IncRowsNotFound(table, column string) {
}

func (m *nopProtocolMetrics) IncReads(column string) {
}

func (m *nopProtocolMetrics) IncReadFailures(column string) {
}
