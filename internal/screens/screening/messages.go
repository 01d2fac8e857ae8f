package screening

import (
	"time"

	"github.com/abhisek/kidscreen/internal/session"
)

// predictionMsg carries the outcome of a submission back to the screen.
type predictionMsg struct {
	Ticket session.Ticket
	Label  string
	Err    error
}

// spinnerTickMsg animates the waiting indicator while a submission is
// pending. Session ties the tick to the screen that started it.
type spinnerTickMsg struct {
	Session string
	At      time.Time
}
