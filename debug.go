package hoverfx

import (
	"context"
	"log/slog"
	"time"
)

// Stats is a snapshot of an effect's render and scheduling counters.
type Stats struct {
	Frames        uint64
	Draws         int
	LastDrawTime  time.Duration
	PendingLoads  int
	ActiveTweens  int
	Handlers      int
	Blend         float64
	Transitioning bool
}

// Stats returns the current counters.
func (e *Effect) Stats() Stats {
	return Stats{
		Frames:        e.frame,
		Draws:         e.stage.draws,
		LastDrawTime:  e.stage.drawTime,
		PendingLoads:  e.loader.Pending(),
		ActiveTweens:  e.tweens.Len(),
		Handlers:      e.binder.handlers.count(),
		Blend:         e.stage.Blend(),
		Transitioning: e.Transitioning(),
	}
}

// SetDebugMode enables per-draw and per-frame Debug records on the package
// logger.
func (e *Effect) SetDebugMode(enabled bool) {
	e.debug = enabled
	e.stage.debug = enabled
}

// debugLog writes the frame's counters at Debug level.
func (e *Effect) debugLog() {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	st := e.Stats()
	l.Debug("hoverfx: frame",
		slog.Uint64("frame", st.Frames),
		slog.Int("draws", st.Draws),
		slog.Duration("lastDraw", st.LastDrawTime),
		slog.Int("pendingLoads", st.PendingLoads),
		slog.Int("tweens", st.ActiveTweens),
		slog.Float64("blend", st.Blend))
}
