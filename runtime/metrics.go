// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	calls     prometheus.Counter
	failures  prometheus.Counter
	committed prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "calls",
			Help:      "number of calls dispatched",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "failures",
			Help:      "number of calls aborted with an error",
		}),
		committed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "committed",
			Help:      "number of state change sets committed",
		}),
	}
	for _, c := range []prometheus.Collector{m.calls, m.failures, m.committed} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
