package schedule

import (
	"sort"
	"time"

	"servery/internal/clock"
	"servery/internal/models"
)

// slotStep is the grid the app offers times on.
const slotStep = 15

const minutesPerDay = 24 * 60

// OrderPolicy carries the per-request ordering parameters: which mode's
// lead/cutoff fields apply and the fallback lead when a shift has no
// override of its own.
type OrderPolicy struct {
	Mode               models.OrderMode
	DefaultLeadMinutes int
}

// Generator computes ordering and reservation slots against a clock
// source. It keeps no state beyond the source, so one Generator can be
// shared by any number of callers.
type Generator struct {
	src clock.Source
}

// NewGenerator creates a Generator over the given clock source.
func NewGenerator(src clock.Source) *Generator {
	return &Generator{src: src}
}

// OrderingSlots returns the valid collection/delivery times for today,
// sorted ascending and deduplicated across overlapping shifts.
//
// For each shift that serves orders, the earliest candidate is
// max(open+lead, now+lead) aligned up to the 15-minute grid anchored at
// open+lead, so the first offered slot of a shift is exactly its lead-
// shifted opening when that is still reachable. The shift's per-mode
// cutoff shrinks the closing bound, floored at the opening time.
//
// A shift whose closing minute is numerically before its opening (a
// past-midnight shift) is deliberately not normalized on this path; such
// a shift yields no same-day slots. Reservations handle rollover, this
// path keeps the behavior order screens have always shown. See DESIGN.md
// before changing either side.
func (g *Generator) OrderingSlots(week models.WeeklySchedule, policy OrderPolicy) []string {
	ref := g.src.Now()
	day := week.Day(ref.WeekdayID)
	if day == nil {
		return []string{}
	}

	set := make(map[int]bool)
	for _, shift := range day.Shifts {
		if !shift.ServesOrders() {
			continue
		}

		lead := shift.Lead(policy.Mode, policy.DefaultLeadMinutes)
		baseStart := shift.Open + lead
		earliestFromNow := ref.Minutes + lead

		cursor := baseStart
		if earliestFromNow > cursor {
			cursor = earliestFromNow
		}

		closing := shift.Close
		if cutoff := shift.Cutoff(policy.Mode); cutoff > 0 {
			closing -= cutoff
			if closing < shift.Open {
				closing = shift.Open
			}
		}

		if cursor > closing {
			continue
		}

		// Align to the 15-minute grid anchored at baseStart, not at
		// midnight, so the first slot lands on baseStart itself.
		if rem := (cursor - baseStart) % slotStep; rem != 0 {
			cursor += slotStep - rem
		}

		for ; cursor <= closing; cursor += slotStep {
			set[cursor] = true
		}
	}

	return formatSorted(set)
}

// ReservationSlots returns the bookable table times for the target date,
// deduplicated and sorted by minutes of day. The zero Date, or a date
// with no reservation shifts, yields an empty list.
//
// Past-midnight reservation shifts are normalized (closing extended into
// the next day) and the emitted times wrap back to wall-clock values, so
// a 6:00 PM to 1:00 AM shift offers the after-midnight times too. When
// the target date is today, times at or before "now" are dropped.
func (g *Generator) ReservationSlots(week models.WeeklySchedule, target Date) []string {
	if target.IsZero() {
		return []string{}
	}

	day := week.Day(target.WeekdayID())
	if day == nil {
		return []string{}
	}

	ref := g.src.Now()
	isToday := target.Year == ref.Year && target.Month == ref.Month && target.Day == ref.Day

	set := make(map[int]bool)
	for _, shift := range day.Shifts {
		if shift.Kind != models.ShiftReservation {
			continue
		}

		open, closing := shift.Open, shift.Close
		if closing < open {
			closing += minutesPerDay
		}

		for mins := open; mins <= closing; mins += slotStep {
			cmp := mins % minutesPerDay
			if isToday && cmp <= ref.Minutes {
				continue
			}
			set[cmp] = true
		}
	}

	return formatSorted(set)
}

// Date is a reservation target day.
type Date struct {
	Day   int
	Month time.Month
	Year  int
}

func (d Date) IsZero() bool {
	return d.Day == 0 && d.Month == 0 && d.Year == 0
}

// WeekdayID returns the 1-7 Monday-first weekday of the date.
func (d Date) WeekdayID() int {
	return clock.WeekdayID(time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC))
}

func formatSorted(set map[int]bool) []string {
	mins := make([]int, 0, len(set))
	for m := range set {
		mins = append(mins, m)
	}
	sort.Ints(mins)

	out := make([]string, len(mins))
	for i, m := range mins {
		out[i] = clock.FormatMinutes(m)
	}
	return out
}
