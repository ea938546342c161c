// Package testing switches the application into test mode when imported by
// test binaries, so main and config code skip runtime side effects.
package testing

import (
	"os"
	"sync"
	stdtesting "testing"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("POS_TEST_MODE", "1")
		for key, value := range map[string]string{
			"SESSION_SECRET": "test-session-secret",
			"CSRF_SECRET":    "test-csrf-secret",
		} {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
		}
	})
}

func init() {
	ensureTestMode()
}

// TestMain can be called from a package's own TestMain.
func TestMain(m *stdtesting.M) {
	ensureTestMode()
	os.Exit(m.Run())
}
