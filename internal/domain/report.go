package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// DayCount is a ranking row for days of the week
type DayCount struct {
	Day   time.Weekday
	Count int
}

// TimeCount is a ranking row for times of day
type TimeCount struct {
	Time  types.TimeString
	Count int
}

// DayTime is a weekly recurring (day of week, time of day) pair
type DayTime struct {
	Day  time.Weekday
	Time types.TimeString
}

// DayTimeCount is a ranking row for (day of week, time of day) pairs
type DayTimeCount struct {
	DayTime DayTime
	Count   int
}

// ReportKind selects one of the report tables
type ReportKind string

const (
	ReportDays     ReportKind = "days"
	ReportTimes    ReportKind = "times"
	ReportWeekly   ReportKind = "weekly"
	ReportAllKinds ReportKind = "all"
)

// IsValid returns true for a known report kind
func (k ReportKind) IsValid() bool {
	switch k {
	case ReportDays, ReportTimes, ReportWeekly, ReportAllKinds:
		return true
	default:
		return false
	}
}

// Includes returns true if the kind selects the table other
func (k ReportKind) Includes(other ReportKind) bool {
	return k == ReportAllKinds || k == other
}
