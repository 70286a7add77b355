package program

import (
	"fmt"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
)

// Supported Gregorian years. 285 is the first year whose every day falls
// on or after 1 Tout of Coptic year 1.
const (
	MinYear = 285
	MaxYear = 9999
)

// Request asks for the program of one Gregorian month. The verses are
// opaque text passed to the document unchanged.
type Request struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	FrenchVerse string `json:"french_verse"`
	ArabicVerse string `json:"arabic_verse"`
}

// Validate checks the year and month before any conversion work.
func (r Request) Validate() error {
	return ValidateMonth(r.Year, r.Month)
}

// ValidateMonth checks that (year, month) is a month the converter supports.
func ValidateMonth(year, month int) error {
	if year == 0 {
		return &ValidationError{Field: "year", Message: "is required"}
	}
	if year < MinYear || year > MaxYear {
		return &ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinYear, MaxYear, year),
		}
	}
	if month < 1 || month > 12 {
		return &ValidationError{
			Field:   "month",
			Message: fmt.Sprintf("must be between 1 and 12, got %d", month),
		}
	}
	return nil
}

// ValidateCopticDay checks a Coptic (month, day) lookup key.
func ValidateCopticDay(month, day int) error {
	if month < 1 || month > 13 {
		return &ValidationError{
			Field:   "month",
			Message: fmt.Sprintf("must be between 1 and 13, got %d", month),
		}
	}
	if !calendar.ValidCopticDay(month, day) {
		max := 30
		if month == 13 {
			max = 6
		}
		return &ValidationError{
			Field:   "day",
			Message: fmt.Sprintf("must be between 1 and %d for month %d, got %d", max, month, day),
		}
	}
	return nil
}
