// Package cancelwindow gates order cancellation on the time elapsed since
// the order was placed.
package cancelwindow

import "time"

// Window is how long after placement an order may still be cancelled.
const Window = 24 * time.Hour

// Allows reports whether an order created at createdAt can still be
// cancelled at now. The window is strict: exactly 24h is too late.
func Allows(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < Window
}

// Remaining returns how much of the window is left, clamped at zero.
func Remaining(createdAt, now time.Time) time.Duration {
	left := Window - now.Sub(createdAt)
	if left < 0 {
		return 0
	}
	return left
}
