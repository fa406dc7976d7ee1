package bootstrap

import (
	"strings"
	"time"

	"voucher-service/internal/pkg/clock"
	"voucher-service/internal/pkg/config"

	"go.uber.org/fx"
)

var ClockModule = fx.Module("clock",
	fx.Provide(
		NewClock,
	),
)

// NewClock builds the process-wide clock once at startup: an explicit
// APP_TIMEZONE selects an IANA zone, blank falls back to the system zone.
func NewClock(cfg config.Config) (clock.Clock, error) {
	tz := strings.TrimSpace(cfg.App.TimeZone)
	if tz == "" {
		return clock.NewRealClock(), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	return clock.NewRealClockIn(loc), nil
}
