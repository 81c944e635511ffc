package startup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/thatsimonsguy/icom-clocksync/internal/config"
)

// ServiceUnit renders a oneshot unit that runs a single sync.
func ServiceUnit(cfg config.Config) string {
	return fmt.Sprintf(`[Unit]
Description=Set radio clock over CI-V
After=dev-%s.device

[Service]
Type=oneshot
ExecStart=%s -config-file %s
`, filepath.Base(cfg.PortPath), cfg.BinaryPath, cfg.ConfigFile)
}

// TimerUnit renders the daily schedule. The default fires at 01:59 so
// the radio is set at 02:00:00, when US clock changes happen.
func TimerUnit(cfg config.Config) string {
	return fmt.Sprintf(`[Unit]
Description=Daily radio clock sync

[Timer]
OnCalendar=%s
AccuracySec=1s
Persistent=false
Unit=%s

[Install]
WantedBy=timers.target
`, cfg.OnCalendar, filepath.Base(cfg.ServicePath))
}

func InstallService(cfg config.Config) error {
	return os.WriteFile(cfg.ServicePath, []byte(ServiceUnit(cfg)), 0644)
}

func InstallTimer(cfg config.Config) error {
	return os.WriteFile(cfg.TimerPath, []byte(TimerUnit(cfg)), 0644)
}
