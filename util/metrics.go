package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	pollsTotalCounter       prometheus.Counter
	pollsModifiedCounter    prometheus.Counter
	pollErrorsCounter       prometheus.Counter
	staleSnapshotsCounter   prometheus.Counter
	actionsSubmittedCounter prometheus.Counter
	actionsRejectedCounter  prometheus.Counter
	activeGamesCountGauge   prometheus.Gauge
}

func (m *metrics) PollCompleted() {
	m.pollsTotalCounter.Inc()
}

func (m *metrics) PollModified() {
	m.pollsModifiedCounter.Inc()
}

func (m *metrics) PollError() {
	m.pollErrorsCounter.Inc()
}

func (m *metrics) StaleSnapshotDropped() {
	m.staleSnapshotsCounter.Inc()
}

func (m *metrics) ActionSubmitted() {
	m.actionsSubmittedCounter.Inc()
}

func (m *metrics) ActionRejected() {
	m.actionsRejectedCounter.Inc()
}

func (m *metrics) SetActiveGamesCount(count int) {
	m.activeGamesCountGauge.Set(float64(count))
}

var Metrics = &metrics{
	pollsTotalCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_polls_total",
		Help: "Total number of game state polls issued",
	}),
	pollsModifiedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_polls_modified_total",
		Help: "Total number of polls that returned a modified snapshot",
	}),
	pollErrorsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "game_poll_errors_total",
		Help: "Total number of polls that ended in an error",
	}),
	staleSnapshotsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "stale_snapshots_dropped_total",
		Help: "Total number of snapshots dropped for being older than the last applied one",
	}),
	actionsSubmittedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "player_actions_submitted_total",
		Help: "Total number of player actions accepted by the server",
	}),
	actionsRejectedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "player_actions_rejected_total",
		Help: "Total number of player actions rejected by the server",
	}),
	activeGamesCountGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_games_count",
		Help: "Count of games currently held in the dev server store",
	}),
}
