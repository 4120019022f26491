package in

import "timetrack/internal/modules/agent/domain"

// Commander is the producer side of the runtime inbox.
type Commander interface {
	Send(cmd domain.Command) bool
}
