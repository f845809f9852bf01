// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	reads   prometheus.Counter
	writes  prometheus.Counter
	commits prometheus.Counter
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "reads",
			Help:      "number of point reads",
		}),
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "writes",
			Help:      "number of direct writes and deletes",
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "commits",
			Help:      "number of batch commits",
		}),
	}
	for _, c := range []prometheus.Collector{m.reads, m.writes, m.commits} {
		if err := r.Register(c); err != nil {
			return nil, nil, err
		}
	}
	return r, m, nil
}
