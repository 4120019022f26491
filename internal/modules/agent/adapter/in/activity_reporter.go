package in

import (
	"time"

	"golang.org/x/time/rate"

	"timetrack/internal/modules/agent/domain"
	agentin "timetrack/internal/modules/agent/port/in"
)

// ActivityReporter turns raw input observations into UserActivity commands,
// at most one per debounce window.
type ActivityReporter struct {
	commander agentin.Commander
	limiter   *rate.Limiter
}

func NewActivityReporter(commander agentin.Commander, debounce time.Duration) *ActivityReporter {
	limit := rate.Inf
	if debounce > 0 {
		limit = rate.Every(debounce)
	}
	return &ActivityReporter{
		commander: commander,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Report reports whether a command was sent for input observed at t.
func (r *ActivityReporter) Report(t time.Time) bool {
	if !r.limiter.AllowN(t, 1) {
		return false
	}
	return r.commander.Send(domain.UserActivity{At: t})
}
