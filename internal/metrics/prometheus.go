package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	episodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ezcoach",
			Subsystem: "runner",
			Name:      "episodes_total",
			Help:      "Episodes completed per player.",
		},
		[]string{"player"},
	)

	episodeReward = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ezcoach",
			Subsystem: "runner",
			Name:      "episode_reward",
			Help:      "Accumulated reward of the most recent episode per player.",
		},
		[]string{"player"},
	)

	episodeActions = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ezcoach",
			Subsystem: "runner",
			Name:      "episode_actions",
			Help:      "Actions taken per episode.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		},
		[]string{"player"},
	)

	episodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ezcoach",
			Subsystem: "runner",
			Name:      "episode_duration_seconds",
			Help:      "Wall-clock episode duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
		},
		[]string{"player"},
	)
)

var registerOnce sync.Once

// Register installs the episode collectors on the default registry. Safe to
// call from multiple paths.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			episodesTotal,
			episodeReward,
			episodeActions,
			episodeDuration,
		)
	})
}

// RecordEpisode publishes one finished episode for a player.
func RecordEpisode(player int, duration time.Duration, actions int, reward float64) {
	Register()
	label := strconv.Itoa(player)
	episodesTotal.WithLabelValues(label).Inc()
	episodeReward.WithLabelValues(label).Set(reward)
	episodeActions.WithLabelValues(label).Observe(float64(actions))
	episodeDuration.WithLabelValues(label).Observe(duration.Seconds())
}
