package schedule

import (
	"testing"

	"servery/internal/clock"
	"servery/internal/models"
)

func orderingShift(open, closing int) models.Shift {
	return models.Shift{
		Kind:  models.ShiftOrdering,
		Label: "Collection/Delivery",
		Open:  open,
		Close: closing,
	}
}

func reservationShift(open, closing int) models.Shift {
	return models.Shift{
		Kind:  models.ShiftReservation,
		Label: "Table Reservation",
		Open:  open,
		Close: closing,
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		week models.WeeklySchedule
		ref  clock.ReferenceTime
		want Status
	}{
		{
			name: "no schedule at all",
			week: models.WeeklySchedule{},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 600},
			want: StatusClosed,
		},
		{
			name: "no entry for today",
			week: models.WeeklySchedule{{WeekdayID: 2, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 600},
			want: StatusClosed,
		},
		{
			name: "day without shifts",
			week: models.WeeklySchedule{{WeekdayID: 1}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 600},
			want: StatusClosed,
		},
		{
			name: "only reservation shifts",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{reservationShift(1080, 1380)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 1200},
			want: StatusClosed,
		},
		{
			name: "inside the shift",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 600},
			want: StatusOpen,
		},
		{
			name: "exactly at opening",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 540},
			want: StatusOpen,
		},
		{
			name: "exactly at closing",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 1320},
			want: StatusOpen,
		},
		{
			name: "before the only shift",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 400},
			want: StatusPreOrder,
		},
		{
			name: "after the only shift",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{orderingShift(540, 1320)}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 1400},
			want: StatusClosed,
		},
		{
			name: "between split shifts",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{
				orderingShift(540, 840),
				orderingShift(1020, 1320),
			}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 900},
			want: StatusPreOrder,
		},
		{
			name: "after all split shifts",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{
				orderingShift(540, 840),
				orderingShift(1020, 1320),
			}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 1350},
			want: StatusClosed,
		},
		{
			name: "open in second shift",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{
				orderingShift(540, 840),
				orderingShift(1020, 1320),
			}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 1100},
			want: StatusOpen,
		},
		{
			name: "reservation shift ignored when deciding pre-order",
			week: models.WeeklySchedule{{WeekdayID: 1, Shifts: []models.Shift{
				reservationShift(0, 1439),
				orderingShift(1020, 1320),
			}}},
			ref:  clock.ReferenceTime{WeekdayID: 1, Minutes: 600},
			want: StatusPreOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.week, tt.ref); got != tt.want {
				t.Errorf("Evaluate() = %s, want %s", got, tt.want)
			}
		})
	}
}
