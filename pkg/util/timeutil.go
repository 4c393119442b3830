package util

import "time"

// NowUTC is the clock for persisted timestamps; tests replace it.
func NowUTC() time.Time {
	return time.Now().UTC()
}
