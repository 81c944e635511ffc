package datadog

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/icom-clocksync/internal/config"
)

// Client emits DogStatsD metrics. A nil or disabled Client drops them.
type Client struct {
	dogstatsd *statsd.Client
}

func InitMetrics(cfg config.Config) *Client {
	if !cfg.EnableDatadog {
		return &Client{}
	}

	dogstatsd, err := statsd.New(cfg.DDAgentAddr, statsd.WithoutTelemetry())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		return &Client{}
	}

	dogstatsd.Namespace = cfg.DDNamespace
	dogstatsd.Tags = cfg.DDTags

	log.Info().
		Str("addr", cfg.DDAgentAddr).
		Str("namespace", cfg.DDNamespace).
		Strs("tags", cfg.DDTags).
		Msg("Datadog metrics initialized")

	return &Client{dogstatsd: dogstatsd}
}

func (c *Client) Gauge(name string, value float64, tags ...string) {
	if c == nil || c.dogstatsd == nil {
		return
	}
	if err := c.dogstatsd.Gauge(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
	}
}

func (c *Client) Count(name string, value int64, tags ...string) {
	if c == nil || c.dogstatsd == nil {
		return
	}
	if err := c.dogstatsd.Count(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit count metric")
	}
}

// Close flushes buffered metrics. The process exits right after a sync,
// so anything left unflushed would be lost.
func (c *Client) Close() {
	if c == nil || c.dogstatsd == nil {
		return
	}
	if err := c.dogstatsd.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to flush DogStatsD client")
	}
}
