package model

import "time"

// The UK trading day is split into 48 half-hour settlement periods.
// Clock-change days carry 49 or 50; those extra periods have no canonical
// wall-clock mapping and are excluded from cross-series alignment.
const (
	PeriodsPerDay     = 48
	MaxPeriod         = 50
	peakFirstPeriod = 15 // 07:00
	peakLastPeriod  = 38 // 18:30-19:00
	HalfHour        = 30 * time.Minute
	DateFormat      = "2006-01-02"
)

// PeriodClock maps a settlement period to its time of day:
// period 1 -> 00:00, period 2 -> 00:30, ... period 48 -> 23:30.
// ok is false for periods 49 and 50 (and anything outside [1,50] is the
// caller's validation problem; we still report ok=false).
func PeriodClock(period int) (hour, minute int, ok bool) {
	if period < 1 || period > PeriodsPerDay {
		return 0, 0, false
	}
	hour = (period - 1) / 2
	if (period-1)%2 == 1 {
		minute = 30
	}
	return hour, minute, true
}

// PeriodTimestamp converts (settlement date, period) to the canonical UTC
// half-hour timestamp used to join against carbon and fuel-mix readings.
func PeriodTimestamp(settlementDate time.Time, period int) (time.Time, bool) {
	h, m, ok := PeriodClock(period)
	if !ok {
		return time.Time{}, false
	}
	y, mo, d := settlementDate.Date()
	return time.Date(y, mo, d, h, m, 0, 0, time.UTC), true
}

// IsPeakPeriod reports whether a settlement period is peak: weekdays
// (Mon-Fri), periods 15-38 (07:00-19:00). Everything else, including all of
// Saturday and Sunday, is off-peak.
func IsPeakPeriod(settlementDate time.Time, period int) bool {
	wd := settlementDate.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return period >= peakFirstPeriod && period <= peakLastPeriod
}

// FloorHalfHour rounds a timestamp down to its half-hour boundary and strips
// sub-minute precision. Carbon and fuel-mix readings are indexed this way
// before any join.
func FloorHalfHour(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, t.Hour(), minute, 0, 0, time.UTC)
}

// DateOf truncates a timestamp to its calendar date (UTC midnight).
func DateOf(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// WeekKey identifies an ISO week.
type WeekKey struct {
	Year int
	Week int
}

// Before gives WeekKeys a total order for sorted emission.
func (k WeekKey) Before(other WeekKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Week < other.Week
}

// ISOWeekOf returns the ISO week a date falls in.
func ISOWeekOf(d time.Time) WeekKey {
	year, week := d.ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d time.Time) (start, end time.Time) {
	// time.Weekday has Sunday=0; ISO weeks start Monday.
	offset := (int(d.Weekday()) + 6) % 7
	start = DateOf(d).AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// MonthBounds returns the first and last day of a calendar month.
func MonthBounds(year int, month time.Month) (from, to time.Time) {
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to
}

// PreviousMonth steps a (year, month) pair back by one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
