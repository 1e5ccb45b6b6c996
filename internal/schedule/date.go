package schedule

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate reads the "DD-MM-YYYY" (or "DD/MM/YYYY") form the app sends
// for reservation dates. Unparseable input returns the zero Date, which
// the generator turns into an empty slot list.
func ParseDate(s string) Date {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) != 3 {
		return Date{}
	}

	dd, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	yyyy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}
	}
	if dd < 1 || dd > 31 || mm < 1 || mm > 12 || yyyy < 1 {
		return Date{}
	}

	return Date{Day: dd, Month: time.Month(mm), Year: yyyy}
}
