package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when the caller passes zero.
const DefaultTimeout = 5 * time.Second

// Context returns a context canceled at timeout, at the test's own deadline,
// or when the test finishes, whichever comes first.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if at, set := deadline.Deadline(); set {
			if left := time.Until(at) - time.Second; left > 0 && left < timeout {
				timeout = left
			}
		}
	}
	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// Eventually polls cond every interval and fails the test when it is still
// false after timeout.
func Eventually(t testing.TB, timeout, interval time.Duration, cond func() bool, format string, args ...any) {
	t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !cond() {
		select {
		case <-timer.C:
			t.Fatalf("timed out after %s: "+format, append([]any{timeout}, args...)...)
		case <-ticker.C:
		}
	}
}
