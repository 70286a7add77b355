package program

import (
	"github.com/zapponejosh/synaxaire-program/internal/calendar"
)

// MonthCoverage counts the Coptic days of one month that have at least one
// commemoration.
type MonthCoverage struct {
	Month   int    `json:"month" yaml:"month"`
	Name    string `json:"name" yaml:"name"`
	Days    int    `json:"days" yaml:"days"`
	Covered int    `json:"covered" yaml:"covered"`
	Missing []int  `json:"missing" yaml:"missing"`
}

// CoverageReport tells which Coptic days the commemorations table leaves
// empty, so gaps in the source data can be found before a program is
// printed.
type CoverageReport struct {
	TotalDays int             `json:"total_days" yaml:"total_days"`
	Covered   int             `json:"covered" yaml:"covered"`
	Records   int             `json:"records" yaml:"records"`
	Months    []MonthCoverage `json:"months" yaml:"months"`
}

// Missing returns the number of days without any commemoration.
func (r *CoverageReport) Missing() int {
	return r.TotalDays - r.Covered
}

// Coverage checks every Coptic (month, day), including the sixth day of
// Nasie that only exists in leap years.
func Coverage(src CommemorationSource) *CoverageReport {
	report := &CoverageReport{}

	for month := 1; month <= 13; month++ {
		mc := MonthCoverage{
			Month:   month,
			Name:    calendar.CopticMonthName(month),
			Missing: []int{},
		}
		for day := 1; day <= 30; day++ {
			if !calendar.ValidCopticDay(month, day) {
				break
			}
			mc.Days++

			n := len(src.Lookup(month, day))
			report.Records += n
			if n > 0 {
				mc.Covered++
			} else {
				mc.Missing = append(mc.Missing, day)
			}
		}

		report.TotalDays += mc.Days
		report.Covered += mc.Covered
		report.Months = append(report.Months, mc)
	}

	return report
}
