/* metrics.go
 * Contains the prometheus counters the bot records: commands handled, provider requests and outbound chat messages
 * Authors: Zachary Bower
 */

package metrics

import (
	"net/http"

	"sportsstats-bot/api/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sportsstats"

// Label keys
const (
	LabelCommand  = "command"
	LabelEndpoint = "endpoint"
	LabelOutcome  = "outcome"
)

// Recorder holds the bot's counters. A nil Recorder records nothing, so callers never need to check
type Recorder struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
	upstream *prometheus.CounterVec
	outbound *prometheus.CounterVec
}

// NewRecorder creates the counters and registers them on a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Chat commands handled, by command and outcome.",
		}, []string{LabelCommand, LabelOutcome}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests made to the football data provider, by endpoint and outcome.",
		}, []string{LabelEndpoint, LabelOutcome}),
		outbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbound_units_total",
			Help:      "Card messages handed to the chat platform, by outcome.",
		}, []string{LabelOutcome}),
	}
	reg.MustRegister(r.commands, r.upstream, r.outbound)
	return r
}

// Handler returns the /metrics handler for this recorder's registry
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordCommand counts one handled command. err is classified into the error taxonomy
func (r *Recorder) RecordCommand(command string, err error) {
	if r == nil {
		return
	}
	r.commands.WithLabelValues(command, shared.Kind(err)).Inc()
}

// RecordUpstream counts one provider request
func (r *Recorder) RecordUpstream(endpoint string, err error) {
	if r == nil {
		return
	}
	r.upstream.WithLabelValues(endpoint, outcome(err)).Inc()
}

// RecordOutbound counts one outbound unit
func (r *Recorder) RecordOutbound(err error) {
	if r == nil {
		return
	}
	r.outbound.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
