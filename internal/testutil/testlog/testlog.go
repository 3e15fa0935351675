package testlog

import (
	"testing"

	"github.com/danmuck/fdfswire/internal/logging"
	logs "github.com/danmuck/smplog"
)

// Start applies the test logging profile and brackets t in the log.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	logs.Infof("test=%s", t.Name())
	t.Cleanup(func() {
		if t.Failed() {
			logs.Warnf("test=%s failed", t.Name())
		}
	})
}
