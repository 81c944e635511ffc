package main

import (
	"io"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/icom-clocksync/internal/clock"
	"github.com/thatsimonsguy/icom-clocksync/internal/config"
	"github.com/thatsimonsguy/icom-clocksync/internal/datadog"
	"github.com/thatsimonsguy/icom-clocksync/internal/logging"
	"github.com/thatsimonsguy/icom-clocksync/internal/notifications"
	"github.com/thatsimonsguy/icom-clocksync/internal/serialport"
	"github.com/thatsimonsguy/icom-clocksync/internal/syncer"
	"github.com/thatsimonsguy/icom-clocksync/internal/transport"
	"github.com/thatsimonsguy/icom-clocksync/system/shutdown"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("port", cfg.PortPath).
		Int("baud", cfg.BaudRate).
		Bool("use_utc", cfg.UseUTC).
		Msg("Starting radio clock sync")

	notifier := notifications.Init(cfg.NtfyTopic)
	metrics := datadog.InitMetrics(cfg)

	// open the port before the clock is read
	var conn io.WriteCloser
	if cfg.DryRun {
		log.Warn().Msg("DRY RUN ENABLED: frames are logged, not sent")
		conn = &transport.DryRun{}
	} else {
		port, err := serialport.Open(cfg.PortPath, cfg.BaudRate)
		if err != nil {
			metrics.Close()
			shutdown.ShutdownWithError(err, "Failed to open serial port", notifier)
			return
		}
		conn = port
	}

	sys := clock.System{}
	s := syncer.New(syncer.Options{UseUTC: cfg.UseUTC}, sys, sys, metrics)

	_, err := s.Run(conn)
	metrics.Close()
	if err != nil {
		shutdown.ShutdownWithError(err, "Clock sync failed in state "+s.State().String(), notifier)
		return
	}

	shutdown.Shutdown()
}
