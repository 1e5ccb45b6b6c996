package models

import (
	"strings"

	"servery/internal/clock"
)

// ShiftKind tags what a schedule interval is for. The backend encodes
// this with numeric type codes and a free-text label; the tag is decided
// once at ingestion so nothing downstream re-inspects raw codes.
type ShiftKind int

const (
	ShiftUnknown ShiftKind = iota
	ShiftOrdering
	ShiftReservation
)

// Backend type codes for schedule rows.
const (
	typeCodeOrdering    = "3"
	typeCodeReservation = "4"
)

// OrderMode selects which per-shift lead and cutoff fields apply.
type OrderMode string

const (
	ModeCollection OrderMode = "collection"
	ModeDelivery   OrderMode = "delivery"
)

// Shift is one continuous open interval within a day. Times are minutes
// since midnight; Close may be numerically smaller than Open when the
// shift runs past midnight.
type Shift struct {
	Kind  ShiftKind
	Label string
	Open  int
	Close int

	// Per-mode lead minutes; zero means no shift-specific override.
	CollectionLead int
	DeliveryLead   int

	// Per-mode cutoff: minutes before closing after which new orders of
	// that mode are no longer accepted. Zero means no cutoff.
	CollectionCutoff int
	DeliveryCutoff   int
}

// ServesOrders reports whether this shift takes collection/delivery
// orders. The backend marks such rows with a combined "Collection/Delivery"
// label on a single shift entry; the two modes are differentiated by the
// per-mode lead and cutoff fields, not by separate entries.
func (s Shift) ServesOrders() bool {
	return s.Kind == ShiftOrdering && strings.Contains(strings.ToLower(s.Label), "collection")
}

// Lead returns the effective lead minutes for a mode, falling back to
// defaultLead when the shift has no positive override.
func (s Shift) Lead(mode OrderMode, defaultLead int) int {
	override := s.CollectionLead
	if mode == ModeDelivery {
		override = s.DeliveryLead
	}
	if override > 0 {
		return override
	}
	return defaultLead
}

// Cutoff returns the cutoff minutes for a mode, zero when none applies.
func (s Shift) Cutoff(mode OrderMode) int {
	if mode == ModeDelivery {
		return s.DeliveryCutoff
	}
	return s.CollectionCutoff
}

// DaySchedule holds the shifts for one weekday (1 = Monday ... 7 = Sunday).
type DaySchedule struct {
	WeekdayID int
	Shifts    []Shift
}

// WeeklySchedule is a restaurant's full week, at most one entry per
// weekday id. Entries are read-only views built fresh from each backend
// response; nothing mutates them after ingestion.
type WeeklySchedule []DaySchedule

// Day returns the schedule for a weekday id, nil when the week has none.
func (w WeeklySchedule) Day(weekdayID int) *DaySchedule {
	for i := range w {
		if w[i].WeekdayID == weekdayID {
			return &w[i]
		}
	}
	return nil
}

// RawShift is a schedule row as the backend sends it. Numeric fields
// arrive as either JSON strings or numbers depending on the backend
// version, hence FlexInt.
type RawShift struct {
	Type             FlexString `json:"type"`
	TimingFor        FlexString `json:"timing_for"`
	OpeningTime      string     `json:"opening_time"`
	ClosingTime      string     `json:"closing_time"`
	Collection       FlexInt    `json:"Collection"`
	Delivery         FlexInt    `json:"Delivery"`
	CollectionCutoff FlexInt    `json:"last_time_for_collection_submit"`
	DeliveryCutoff   FlexInt    `json:"last_time_for_delivery_submit"`
}

// RawDaySchedule is one weekday's entry in the backend response.
type RawDaySchedule struct {
	WeekdayID FlexInt    `json:"weekday_id"`
	List      []RawShift `json:"list"`
}

// ParseSchedule validates backend schedule rows into the internal model.
// Rows with missing or unparseable opening/closing times and days with a
// weekday id outside 1-7 are dropped rather than reported: schedule data
// that cannot be trusted must degrade to "no availability", never to an
// error in a caller's render path.
func ParseSchedule(raw []RawDaySchedule) WeeklySchedule {
	week := make(WeeklySchedule, 0, len(raw))
	seen := make(map[int]bool, 7)

	for _, rd := range raw {
		id := int(rd.WeekdayID)
		if id < 1 || id > 7 || seen[id] {
			continue
		}

		day := DaySchedule{WeekdayID: id}
		for _, rs := range rd.List {
			open, err := clock.ParseMinutes(rs.OpeningTime)
			if err != nil {
				continue
			}
			closing, err := clock.ParseMinutes(rs.ClosingTime)
			if err != nil {
				continue
			}

			day.Shifts = append(day.Shifts, Shift{
				Kind:             classifyShift(string(rs.Type), string(rs.TimingFor)),
				Label:            string(rs.TimingFor),
				Open:             open,
				Close:            closing,
				CollectionLead:   int(rs.Collection),
				DeliveryLead:     int(rs.Delivery),
				CollectionCutoff: int(rs.CollectionCutoff),
				DeliveryCutoff:   int(rs.DeliveryCutoff),
			})
		}

		seen[id] = true
		week = append(week, day)
	}

	return week
}

func classifyShift(typeCode, label string) ShiftKind {
	switch {
	case typeCode == typeCodeOrdering:
		return ShiftOrdering
	case typeCode == typeCodeReservation:
		return ShiftReservation
	case strings.Contains(strings.ToLower(label), "reservation"):
		return ShiftReservation
	default:
		return ShiftUnknown
	}
}
