package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts accepted signups.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thaichat_signups_total",
		Help: "Total number of accepted signups",
	})

	// SigninsTotal counts signin attempts by outcome.
	SigninsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thaichat_signins_total",
		Help: "Total number of signin attempts by outcome",
	}, []string{"outcome"})

	// MessagesTotal counts message ledger mutations by action.
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thaichat_messages_total",
		Help: "Total number of message mutations by action",
	}, []string{"action"})

	// ThemeChangesTotal counts successful theme switches by theme name.
	ThemeChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thaichat_theme_changes_total",
		Help: "Total number of theme switches by theme name",
	}, []string{"theme"})
)
