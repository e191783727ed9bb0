// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

// Stats is an optional statistics collector, one of the few pieces of
// permitted global mutable state: set up once at startup and read
// thereafter. Pass one to NewEngine via WithStats to have Engine.Handle/
// Engine.Yield record into it. Build one with NewStats, whose counters can
// be registered with a prometheus.Registerer for export; the zero value
// has no counters and is not usable.
type Stats struct {
	handles  prometheus.Counter
	yields   prometheus.Counter
	resumes  prometheus.Counter
	captures prometheus.Counter
}

// NewStats creates a Stats with independent counters, unregistered.
// Call Register to expose them to a Prometheus registry.
func NewStats() *Stats {
	return &Stats{
		handles:  prometheus.NewCounter(prometheus.CounterOpts{Name: "efkt_handles_total", Help: "Number of Engine.Handle installations."}),
		yields:   prometheus.NewCounter(prometheus.CounterOpts{Name: "efkt_yields_total", Help: "Number of Engine.Yield calls."}),
		resumes:  prometheus.NewCounter(prometheus.CounterOpts{Name: "efkt_resumes_total", Help: "Number of tail resumes completed by Engine.Yield."}),
		captures: prometheus.NewCounter(prometheus.CounterOpts{Name: "efkt_captures_total", Help: "Number of Scoped/General resumptions captured."}),
	}
}

// Register exposes the counters under reg. Call at most once per Stats.
func (s *Stats) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.handles, s.yields, s.resumes, s.captures} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handles returns the number of Engine.Handle installations recorded.
func (s *Stats) Handles() float64 { return counterValue(s.handles) }

// Yields returns the number of Engine.Yield calls recorded.
func (s *Stats) Yields() float64 { return counterValue(s.yields) }

// Resumes returns the number of tail resumes completed by Engine.Yield;
// Resumption.Call is not counted.
func (s *Stats) Resumes() float64 { return counterValue(s.resumes) }

// Captures returns the number of Scoped/General resumptions captured.
func (s *Stats) Captures() float64 { return counterValue(s.captures) }

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil || m.Counter == nil {
		return 0
	}
	return m.Counter.GetValue()
}
