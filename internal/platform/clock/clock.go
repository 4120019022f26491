package clock

import (
	"fmt"
	"time"
)

// Clock abstracts time to keep the agent runtime deterministic in tests.
// Implementations must return readings that carry a monotonic component when
// they are used for elapsed-time math.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns now-start clamped to zero, so a clock stepping backwards never
// yields a negative duration.
func Since(now, start time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders d as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
