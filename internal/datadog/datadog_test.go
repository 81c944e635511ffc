package datadog

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/icom-clocksync/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	c := InitMetrics(config.Defaults())
	assert.NotPanics(t, func() {
		c.Gauge("alignment_overshoot_ms", 1.5)
		c.Count("frames_sent", 1)
		c.Close()
	})

	var nilClient *Client
	assert.NotPanics(t, func() { nilClient.Count("frames_sent", 1) })
}

func TestEmitsToAgent(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	cfg := config.Defaults()
	cfg.EnableDatadog = true
	cfg.DDAgentAddr = conn.LocalAddr().String()

	c := InitMetrics(cfg)
	c.Count("frames_sent", 3, "subcommand:time")
	c.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var payload string
	buf := make([]byte, 8192)
	for !strings.Contains(payload, "frames_sent") {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		payload += string(buf[:n])
	}
	assert.True(t, strings.Contains(payload, "clocksync.frames_sent:3|c"), payload)
	assert.True(t, strings.Contains(payload, "subcommand:time"), payload)
}
