package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notenest",
			Name:      "notes_created_total",
			Help:      "Notes created, by source (manual, smart).",
		},
		[]string{"source"},
	)

	notesReassignedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notenest",
			Name:      "notes_reassigned_total",
			Help:      "Notes moved to Uncategorized because their category was deleted.",
		},
	)

	uncategorizedCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notenest",
			Name:      "uncategorized_created_total",
			Help:      "Uncategorized categories created on first need.",
		},
	)
)
