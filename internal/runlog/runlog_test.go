package runlog_test

import (
	"testing"

	"github.com/vela-lang/vela/internal/runlog"
)

// TestNilLoggerIsSilentAndSafe confirms every Logger method is nil-safe,
// the property driver.Run relies on when the caller passes no logger.
func TestNilLoggerIsSilentAndSafe(t *testing.T) {
	var lg *runlog.Logger
	lg.Infof("first round: %d file(s)", 3)
	lg.Warnf("recoverable: %s", "x")
	lg.Errorf("failed: %v", "boom")
}

func TestNewLoggerDoesNotPanicOnEveryLevel(t *testing.T) {
	lg := runlog.New()
	lg.Infof("starting")
	lg.Warnf("careful")
	lg.Errorf("broken")
}
