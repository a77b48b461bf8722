// Package metrics provides Prometheus counters for the bot's background tasks.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	FeedPolls             prometheus.Counter
	FeedFetchErrors       prometheus.Counter
	FeedPostsSent         prometheus.Counter
	BirthdayAnnouncements prometheus.Counter
	SendErrors            prometheus.Counter
	StreamAnnouncements   prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		FeedPolls = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_feed_polls_total", Help: "Number of Letterboxd poll cycles completed"})
		FeedFetchErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_feed_fetch_errors_total", Help: "Number of feed fetch or parse failures"})
		FeedPostsSent = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_feed_posts_total", Help: "Number of Letterboxd entries announced"})
		BirthdayAnnouncements = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_birthday_announcements_total", Help: "Number of birthday announcements sent"})
		SendErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_send_errors_total", Help: "Number of failed notification sends"})
		StreamAnnouncements = promauto.NewCounter(prometheus.CounterOpts{Name: "impbot_stream_announcements_total", Help: "Number of stream announcements sent"})
	})
}

// Inc increments a counter if metrics have been initialized.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}
