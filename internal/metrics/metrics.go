package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_llm_requests_total",
			Help: "Generation requests sent to the LLM provider, by pipeline step and outcome",
		},
		[]string{"step", "outcome"},
	)

	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_fallbacks_total",
			Help: "Times a deterministic fallback replaced model output",
		},
		[]string{"kind"},
	)
)

func ObserveLLM(step string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	LLMRequests.WithLabelValues(step, outcome).Inc()
}

func ObserveFallback(kind string) {
	Fallbacks.WithLabelValues(kind).Inc()
}
