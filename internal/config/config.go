package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	ConfigFile string
	LogLevel   zerolog.Level

	// radio link
	BaudRate int    `json:"baud_rate"`
	PortPath string `json:"port_path"`
	UseUTC   bool   `json:"use_utc"`

	// encode and log frames without opening the port
	DryRun bool `json:"dry_run"`

	LogFile string `json:"log_file"`

	EnableDatadog bool     `json:"enable_datadog"`
	DDAgentAddr   string   `json:"dd_agent_addr"`
	DDNamespace   string   `json:"dd_namespace"`
	DDTags        []string `json:"dd_tags"`

	NtfyTopic string `json:"ntfy_topic"`

	// systemd scheduling
	BinaryPath  string `json:"binary_path"`
	ServicePath string `json:"service_path"`
	TimerPath   string `json:"timer_path"`
	OnCalendar  string `json:"on_calendar"`
}

func Defaults() Config {
	return Config{
		LogLevel:    zerolog.InfoLevel,
		BaudRate:    19200,
		PortPath:    "/dev/ttyUSB1",
		DDAgentAddr: "127.0.0.1:8125",
		DDNamespace: "clocksync.",
		BinaryPath:  "/usr/local/bin/clocksync",
		ServicePath: "/etc/systemd/system/clocksync.service",
		TimerPath:   "/etc/systemd/system/clocksync.timer",
		OnCalendar:  "*-*-* 01:59:00",
	}
}

func Load() Config {
	var configFile, logLevel string

	flag.StringVar(&configFile, "config-file", "clocksync.json", "Path to clocksync config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := LoadFile(configFile)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	cfg.LogLevel = ParseLogLevel(logLevel)

	cfg.validate()
	return cfg
}

// LoadFile reads path over the defaults. A missing file leaves the
// defaults in place.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	cfg.ConfigFile = path

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	if err := decode(file, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func ParseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	if strings.TrimSpace(cfg.PortPath) == "" && !cfg.DryRun {
		problems = append(problems, "port_path is required")
	}
	if cfg.BaudRate <= 0 {
		problems = append(problems, fmt.Sprintf("baud_rate must be positive, got %d", cfg.BaudRate))
	}
	if cfg.EnableDatadog && cfg.DDAgentAddr == "" {
		problems = append(problems, "dd_agent_addr is required when enable_datadog is set")
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
