// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchupsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchup_generated_total",
		Help: "Matchup generation requests by outcome",
	}, []string{"outcome"})

	MatchupEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchup_side_edits_total",
		Help: "Side edits by whether the opposing side had to be redrawn",
	}, []string{"opponent"})

	MatchesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchup_matches_recorded_total",
		Help: "Matches persisted together with their roster",
	})

	MatchRecordFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "matchup_match_record_failures_total",
		Help: "Failed match recordings by reason",
	}, []string{"reason"})

	HistoryFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "matchup_history_fetch_seconds",
		Help:    "Time to load today's matches and rosters",
		Buckets: prometheus.DefBuckets,
	})

	StaleRefreshDiscarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "matchup_stale_refresh_discarded_total",
		Help: "History and catalog loads dropped because a newer refresh was requested meanwhile",
	})

	BoardGeneration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchup_board_generation",
		Help: "Current refresh generation of today's board",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchup_active_sessions",
		Help: "Sessions holding a matchup controller",
	})

	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "matchup_websocket_clients",
		Help: "Connected WebSocket clients",
	})
)
