package hoverfx

import (
	"log/slog"
	"strings"
	"testing"
)

func TestSetDebugModeLogsFramesAndDraws(t *testing.T) {
	te := newTestEffect(t, Options{})
	buf := captureLogs(t, slog.LevelDebug)

	te.SetDebugMode(true)
	te.Next()
	te.advance(0.1)

	out := buf.String()
	if !strings.Contains(out, "hoverfx: frame") {
		t.Errorf("log = %q, want a frame record", out)
	}
	if !strings.Contains(out, "hoverfx: draw") {
		t.Errorf("log = %q, want a draw record", out)
	}
}

func TestDebugModeOffIsQuiet(t *testing.T) {
	te := newTestEffect(t, Options{})
	buf := captureLogs(t, slog.LevelDebug)
	te.Next()
	te.advance(0.1)
	if strings.Contains(buf.String(), "hoverfx: frame") {
		t.Error("frame records should only be written in debug mode")
	}
}

func TestDebugLogSkippedWhenLevelDisabled(t *testing.T) {
	te := newTestEffect(t, Options{})
	buf := captureLogs(t, slog.LevelInfo)
	te.SetDebugMode(true)
	te.advance(0.1)
	if buf.Len() != 0 {
		t.Errorf("log = %q, want nothing above Debug", buf.String())
	}
}

func TestStatsDrawTime(t *testing.T) {
	te := newTestEffect(t, Options{})
	if te.Stats().Draws != 1 {
		t.Errorf("Draws = %d, want 1", te.Stats().Draws)
	}
	if te.Stats().LastDrawTime < 0 {
		t.Error("LastDrawTime should not be negative")
	}
}
