// Package schedule holds the open-status and time-slot computations the
// ordering app runs against a restaurant's weekly schedule. Everything
// here is a pure function of (schedule, reference time): missing or
// empty data degrades to CLOSED or an empty slot list, never an error.
package schedule

import (
	"servery/internal/clock"
	"servery/internal/models"
)

// Status classifies a restaurant at a point in time.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusClosed   Status = "CLOSED"
	StatusPreOrder Status = "PRE-ORDER"
)

// Evaluate classifies a restaurant as OPEN, CLOSED or PRE-ORDER at the
// given reference time.
//
// A restaurant is OPEN while any ordering shift contains the reference
// time, CLOSED when every ordering shift has already ended for the day
// (or there are none), and PRE-ORDER when all that remains are shifts
// that have not started yet.
//
// Shifts that run past midnight are compared on raw minutes here, same
// as the slot path for ordering; see the package notes on the rollover
// asymmetry in slots.go.
func Evaluate(week models.WeeklySchedule, ref clock.ReferenceTime) Status {
	day := week.Day(ref.WeekdayID)
	if day == nil || len(day.Shifts) == 0 {
		return StatusClosed
	}

	total := 0
	past := 0
	for _, shift := range day.Shifts {
		if shift.Kind != models.ShiftOrdering {
			continue
		}
		total++

		if ref.Minutes >= shift.Open && ref.Minutes <= shift.Close {
			return StatusOpen
		}
		if ref.Minutes > shift.Close {
			past++
		}
	}

	if total == 0 || past >= total {
		return StatusClosed
	}
	return StatusPreOrder
}
