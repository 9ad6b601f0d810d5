package session

import "time"

// advisor throttles High strain alerts.
type advisor struct {
	last     float64
	cooldown float64
	fired    bool
}

func newAdvisor(cooldown time.Duration) *advisor {
	return &advisor{cooldown: cooldown.Seconds()}
}

// fire reports whether an alert may be raised at now, and records it.
func (a *advisor) fire(now float64) bool {
	if a.fired && now-a.last < a.cooldown {
		return false
	}

	a.fired = true
	a.last = now

	return true
}
