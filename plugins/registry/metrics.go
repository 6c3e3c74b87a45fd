// Copyright (c) 2019 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contiv/resreg/pkg/kvstore"
)

const (
	// path where the registry statistics are exposed
	prometheusStatsPath = "/registry-stats"

	nodeLabel = "node"

	txnCommitsMetric   = "txnCommits"
	txnConflictsMetric = "txnConflicts"
	allocationsMetric  = "allocations"
	releasesMetric     = "releases"
)

// registryMetrics streams the registry operation counters to Prometheus.
// A nil instance is valid and counts nothing.
type registryMetrics struct {
	txnCommits   prometheus.Counter
	txnConflicts prometheus.Counter
	allocations  prometheus.Counter
	releases     prometheus.Counter
}

// initMetrics creates and registers the operation counters. Counting is
// disabled when the Prometheus dependency is not wired.
func (p *Registry) initMetrics() error {
	if p.Prometheus == nil {
		p.Log.Debug("Prometheus not available, registry metrics are disabled")
		return nil
	}

	// create new registry for the resource registry statistics
	err := p.Prometheus.NewRegistry(prometheusStatsPath,
		promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError, ErrorLog: p.Log})
	if err != nil {
		return err
	}

	constLabels := prometheus.Labels{}
	if p.ServiceLabel != nil {
		constLabels[nodeLabel] = p.ServiceLabel.GetAgentLabel()
	}
	newCounter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}

	m := &registryMetrics{
		txnCommits:   newCounter(txnCommitsMetric, "Number of committed registry transactions"),
		txnConflicts: newCounter(txnConflictsMetric, "Number of registry transactions aborted by a concurrent write"),
		allocations:  newCounter(allocationsMetric, "Number of resource allocation attempts"),
		releases:     newCounter(releasesMetric, "Number of resource release attempts"),
	}

	// register created counters to prometheus
	for name, metric := range map[string]prometheus.Counter{
		txnCommitsMetric:   m.txnCommits,
		txnConflictsMetric: m.txnConflicts,
		allocationsMetric:  m.allocations,
		releasesMetric:     m.releases,
	} {
		if err := p.Prometheus.Register(prometheusStatsPath, metric); err != nil {
			p.Log.Errorf("failed to register %v metric %v", name, err)
			return err
		}
	}

	p.metrics = m
	return nil
}

// instrument wraps a transaction so that the outcome of its commit is
// counted. The transaction is returned unchanged when counting is disabled.
func (m *registryMetrics) instrument(txn kvstore.Txn) kvstore.Txn {
	if m == nil {
		return txn
	}
	return &countedTxn{Txn: txn, metrics: m}
}

func (m *registryMetrics) incCommits() {
	if m == nil {
		return
	}
	m.txnCommits.Inc()
}

func (m *registryMetrics) incConflicts() {
	if m == nil {
		return
	}
	m.txnConflicts.Inc()
}

func (m *registryMetrics) incAllocations() {
	if m == nil {
		return
	}
	m.allocations.Inc()
}

func (m *registryMetrics) incReleases() {
	if m == nil {
		return
	}
	m.releases.Inc()
}

// countedTxn counts the commit outcome of the wrapped transaction.
type countedTxn struct {
	kvstore.Txn
	metrics *registryMetrics
}

func (t *countedTxn) Commit() error {
	err := t.Txn.Commit()
	switch err {
	case nil:
		t.metrics.incCommits()
	case kvstore.ErrConflict:
		t.metrics.incConflicts()
	}
	return err
}
