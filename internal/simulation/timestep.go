package simulation

import (
	"github.com/LordIdra/transfer-window-sub001/internal/config"
)

// Warp is an in-progress time warp: speed holds at
// StartSpeed*(1+config.WarpAdditionalMultipler) from the start, then
// tapers quadratically over the part of its duration after the
// config.WarpSlowDownAfterFrac mark (or the final
// config.WarpStopBeforeTarget seconds, whichever window is larger).
// Model.Tick clamps the last step so the simulation lands exactly on
// EndTime rather than overshooting it.
type Warp struct {
	StartTime  float64
	EndTime    float64
	StartSpeed float64
}

// EffectiveSpeed returns the warp's time-acceleration factor at absolute
// time now.
func (w *Warp) EffectiveSpeed(now float64, cfg config.Config) float64 {
	total := w.EndTime - w.StartTime
	if total <= 0 {
		return 0
	}
	remaining := w.EndTime - now
	if remaining <= 0 {
		return 0
	}
	taper := total * (1 - cfg.WarpSlowDownAfterFrac)
	if taper < cfg.WarpStopBeforeTarget {
		taper = cfg.WarpStopBeforeTarget
	}
	base := w.StartSpeed * (1 + cfg.WarpAdditionalMultipler)
	if remaining >= taper {
		return base
	}
	frac := remaining / taper
	return base * frac * frac
}

// TimeStep is a vessel-agnostic, model-wide clock control: paused, a
// table-driven discrete speed level (config.TimeStepLevels), or an active
// Warp.
type TimeStep struct {
	Paused     bool
	LevelIndex int
	Warp       *Warp
}

// EffectiveSpeed returns the real-time-to-simulation-time multiplier for
// the current tick.
func (ts TimeStep) EffectiveSpeed(now float64, cfg config.Config) float64 {
	if ts.Paused {
		return 0
	}
	if ts.Warp != nil {
		return ts.Warp.EffectiveSpeed(now, cfg)
	}
	if ts.LevelIndex < 0 || ts.LevelIndex >= len(cfg.TimeStepLevels) {
		return 1
	}
	return cfg.TimeStepLevels[ts.LevelIndex]
}
