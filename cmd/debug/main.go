package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thatsimonsguy/icom-clocksync/internal/civ"
	"github.com/thatsimonsguy/icom-clocksync/internal/clock"
	"github.com/thatsimonsguy/icom-clocksync/internal/config"
	"github.com/thatsimonsguy/icom-clocksync/internal/syncer"
	"github.com/thatsimonsguy/icom-clocksync/system/startup"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var configFile, command, at string
	var offset int
	var useUTC bool
	flag.StringVar(&configFile, "config-file", "clocksync.json", "Path to clocksync config file")
	flag.StringVar(&command, "cmd", "", "Command to run: frames, install-service")
	flag.StringVar(&at, "at", "", "Instant to capture for frames, RFC3339 (default now)")
	flag.IntVar(&offset, "offset", 0, "UTC offset in seconds east for frames")
	flag.BoolVar(&useUTC, "utc", false, "Capture in UTC for frames")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of clocksync-debug:")
		fmt.Println("  -config-file string\tPath to clocksync config file (default 'clocksync.json')")
		fmt.Println("  -cmd string\tCommand to run: frames, install-service")
		fmt.Println("  -at string\tInstant to capture for frames, RFC3339")
		fmt.Println("  -offset int\tUTC offset in seconds east for frames")
		fmt.Println("  -utc\tCapture in UTC for frames")
		fmt.Println("  -help\tShow this help message")
		os.Exit(0)
	}

	var err error
	switch command {
	case "frames":
		err = printFrames(at, offset, useUTC)
	case "install-service":
		err = installService(configFile)
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
}

func printFrames(at string, offset int, useUTC bool) error {
	now := time.Now()
	if at != "" {
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
		now = parsed
	}

	c := clock.Capture(clock.NewFake(now, time.FixedZone("", offset)), useUTC)
	timeFrame, dateFrame, zoneFrame, err := syncer.Frames(c)
	if err != nil {
		return err
	}

	fmt.Printf("captured %s, target %s, wait %s\n", c.Now.Format(time.RFC3339Nano), c.Target.Format(time.RFC3339), c.Deadline)
	for _, frame := range [][]byte{timeFrame, dateFrame, zoneFrame} {
		sub, fields, err := civ.Decode(frame)
		if err != nil {
			return err
		}
		fmt.Printf("%-5s %s  %v\n", sub, hex.EncodeToString(frame), fields)
	}
	return nil
}

func installService(configFile string) error {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(cfg.ConfigFile); err == nil {
		cfg.ConfigFile = abs
	}
	if err := startup.InstallService(cfg); err != nil {
		return fmt.Errorf("write %s: %w", cfg.ServicePath, err)
	}
	if err := startup.InstallTimer(cfg); err != nil {
		return fmt.Errorf("write %s: %w", cfg.TimerPath, err)
	}
	fmt.Printf("Wrote %s and %s\n", cfg.ServicePath, cfg.TimerPath)
	return nil
}
