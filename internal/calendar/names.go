package calendar

import (
	"fmt"
	"time"
)

var copticMonthNames = [...]string{
	"Tout", "Babah", "Hatour", "Kiahk",
	"Toubah", "Amshir", "Baramhat", "Baramoudah",
	"Bashans", "Paoni", "Epip", "Mesra", "Nasie",
}

var frenchWeekdays = [...]string{
	"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche",
}

// CopticMonthName returns the transliterated name of a Coptic month (1-13).
func CopticMonthName(month int) string {
	if month < 1 || month > len(copticMonthNames) {
		return fmt.Sprintf("Month %d", month)
	}
	return copticMonthNames[month-1]
}

// FrenchWeekday returns the French name for a weekday numbered Monday=1
// through Sunday=7.
func FrenchWeekday(weekday int) string {
	if weekday < 1 || weekday > len(frenchWeekdays) {
		return ""
	}
	return frenchWeekdays[weekday-1]
}

// FormatGregorian renders a day as "<French weekday> DD-MM", e.g. "Lundi 01-01".
func FormatGregorian(t time.Time) string {
	return fmt.Sprintf("%s %02d-%02d", FrenchWeekday(ISOWeekday(t)), t.Day(), int(t.Month()))
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDateString parses a YYYY-MM-DD string.
func ParseDateString(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
