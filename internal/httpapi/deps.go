package httpapi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/tracker"
)

type Deps struct {
	Tracker *tracker.Tracker

	Hub *events.Hub

	Log *zap.Logger

	// Live config, stored as config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
