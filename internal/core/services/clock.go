package services

import (
	"time"

	portssvc "github.com/finbooks/general_ledger_app/internal/core/ports/services"
)

// systemClock is the production Clock.
type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now in UTC.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
