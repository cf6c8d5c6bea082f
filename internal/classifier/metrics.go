package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notenest",
			Subsystem: "classifier",
			Name:      "predictions_total",
			Help:      "Category predictions by classifier and outcome (matched, no_match, error, timeout).",
		},
		[]string{"classifier", "outcome"},
	)

	predictionSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notenest",
			Subsystem: "classifier",
			Name:      "prediction_duration_seconds",
			Help:      "Wall time spent obtaining a prediction, including retries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"classifier"},
	)
)
