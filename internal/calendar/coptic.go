package calendar

import "fmt"

// copticEpochJDN is the Julian Day Number of 1 Tout, year 1 (29 August 284).
const copticEpochJDN = 1825030

// CopticDate is a day in the Coptic calendar. Months 1-12 have 30 days;
// month 13 (Nasie) has 5 days, or 6 in a Coptic leap year.
type CopticDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// String renders the date as "<day> <month name> <year>", e.g. "22 Kiahk 1740".
func (d CopticDate) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, CopticMonthName(d.Month), d.Year)
}

// InvalidDateError is returned when a Gregorian date does not exist.
type InvalidDateError struct {
	Year, Month, Day int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid gregorian date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// Convert maps a Gregorian date to its Coptic equivalent.
func Convert(year, month, day int) (CopticDate, error) {
	if !ValidGregorian(year, month, day) {
		return CopticDate{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return fromJDN(toJDN(year, month, day)), nil
}

func copticToJDN(year, month, day int) int {
	return copticEpochJDN - 1 + 365*(year-1) + floorDiv(year, 4) + 30*(month-1) + day
}

func fromJDN(jdn int) CopticDate {
	year := floorDiv(4*(jdn-copticEpochJDN)+1463, 1461)
	month := 1 + floorDiv(jdn-copticToJDN(year, 1, 1), 30)
	day := jdn - copticToJDN(year, month, 1) + 1
	return CopticDate{Year: year, Month: month, Day: day}
}

// IsCopticLeapYear reports whether Nasie has 6 days in the given Coptic year.
func IsCopticLeapYear(year int) bool {
	return (year+1)%4 == 0
}

// ValidCopticDay reports whether (month, day) can occur in some Coptic year.
// Nasie is accepted up to its leap-year length of 6 days.
func ValidCopticDay(month, day int) bool {
	switch {
	case month >= 1 && month <= 12:
		return day >= 1 && day <= 30
	case month == 13:
		return day >= 1 && day <= 6
	default:
		return false
	}
}
