// Package calendar provides the Gregorian and Coptic calendar arithmetic
// used to build a monthly program.
package calendar

import "time"

// IsLeapYear reports whether year is a Gregorian leap year: divisible by 4
// and either not divisible by 100 or divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given Gregorian month.
// It returns 0 when month is outside 1-12.
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	default:
		return 0
	}
}

// ValidGregorian reports whether (year, month, day) names an existing
// Gregorian date. Years before 1 are not part of the calendar.
func ValidGregorian(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, month)
}

// Date returns midnight UTC of the given Gregorian day.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// MondayIndex returns the weekday of t counted from Monday=0 to Sunday=6.
// time.Weekday counts from Sunday=0, so Sunday wraps to the end.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayFromMondayIndex converts a Monday=0 index into the program's
// weekday numbering, Monday=1 through Sunday=7.
func WeekdayFromMondayIndex(index int) int {
	return index + 1
}

// ISOWeekday returns the weekday of t as Monday=1 through Sunday=7.
func ISOWeekday(t time.Time) int {
	return WeekdayFromMondayIndex(MondayIndex(t))
}

// toJDN returns the Julian Day Number of a proleptic Gregorian date.
func toJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
