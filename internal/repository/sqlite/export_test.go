package sqlite

import "time"

// SetClock replaces the timestamp source until the returned func is called.
func SetClock(f func() time.Time) (restore func()) {
	prev := now
	now = f
	return func() { now = prev }
}
