// Package program resolves a Gregorian month into the per-day records of
// a church program.
package program

import (
	"fmt"
	"time"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// CommemorationSource returns the Synaxarium entries of a Coptic day.
type CommemorationSource interface {
	Lookup(month, day int) []synaxaire.Commemoration
}

// ScheduleSource returns the recurring event of a weekday (1=Monday).
type ScheduleSource interface {
	Lookup(weekday int) (synaxaire.ScheduleEntry, bool)
}

// GregorianDate is a civil date without time of day.
type GregorianDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// Time returns the date at midnight UTC.
func (d GregorianDate) Time() time.Time {
	return calendar.Date(d.Year, d.Month, d.Day)
}

func (d GregorianDate) String() string {
	return calendar.FormatDate(d.Time())
}

// ResolvedDay is one row of a monthly program.
type ResolvedDay struct {
	Gregorian      GregorianDate       `json:"gregorian" yaml:"gregorian"`
	Coptic         calendar.CopticDate `json:"coptic" yaml:"coptic"`
	Weekday        int                 `json:"weekday" yaml:"weekday"`
	ScheduleTime   string              `json:"schedule_time" yaml:"schedule_time"`
	ScheduleEvent  string              `json:"schedule_event" yaml:"schedule_event"`
	Commemorations synaxaire.Buckets   `json:"commemorations" yaml:"commemorations"`
}

// Resolver joins the calendar with the commemoration and schedule tables.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	commemorations CommemorationSource
	schedule       ScheduleSource
}

// NewResolver creates a resolver over the given tables.
func NewResolver(commemorations CommemorationSource, schedule ScheduleSource) *Resolver {
	return &Resolver{
		commemorations: commemorations,
		schedule:       schedule,
	}
}

// Resolve returns one record per day of the Gregorian month, in day order.
// The request is rejected as a whole if any day cannot be converted.
func (r *Resolver) Resolve(year, month int) ([]ResolvedDay, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}

	n := calendar.DaysInMonth(year, month)
	days := make([]ResolvedDay, 0, n)

	for day := 1; day <= n; day++ {
		rd, err := r.resolveDay(year, month, day)
		if err != nil {
			return nil, fmt.Errorf("resolve %04d-%02d-%02d: %w", year, month, day, err)
		}
		days = append(days, rd)
	}

	return days, nil
}

func (r *Resolver) resolveDay(year, month, day int) (ResolvedDay, error) {
	coptic, err := calendar.Convert(year, month, day)
	if err != nil {
		return ResolvedDay{}, err
	}

	greg := GregorianDate{Year: year, Month: month, Day: day}
	weekday := calendar.ISOWeekday(greg.Time())

	rd := ResolvedDay{
		Gregorian: greg,
		Coptic:    coptic,
		Weekday:   weekday,
	}

	// Commemorations are keyed by the Coptic date, never the Gregorian one.
	var records []synaxaire.Commemoration
	if r.commemorations != nil {
		records = r.commemorations.Lookup(coptic.Month, coptic.Day)
	}
	rd.Commemorations = synaxaire.Group(records)

	if r.schedule != nil {
		if entry, ok := r.schedule.Lookup(weekday); ok {
			rd.ScheduleTime = entry.Time
			rd.ScheduleEvent = entry.Event
		}
	}

	return rd, nil
}

// DayEntries is the answer to a Coptic day lookup.
type DayEntries struct {
	Month          int                       `json:"month" yaml:"month"`
	Day            int                       `json:"day" yaml:"day"`
	MonthName      string                    `json:"month_name" yaml:"month_name"`
	Records        []synaxaire.Commemoration `json:"records" yaml:"records"`
	Commemorations synaxaire.Buckets         `json:"commemorations" yaml:"commemorations"`
}

// Lookup returns the commemorations of a Coptic (month, day).
func (r *Resolver) Lookup(month, day int) (*DayEntries, error) {
	if err := ValidateCopticDay(month, day); err != nil {
		return nil, err
	}

	records := []synaxaire.Commemoration{}
	if r.commemorations != nil {
		records = r.commemorations.Lookup(month, day)
	}

	return &DayEntries{
		Month:          month,
		Day:            day,
		MonthName:      calendar.CopticMonthName(month),
		Records:        records,
		Commemorations: synaxaire.Group(records),
	}, nil
}

// MonthEntries lists the days of a Coptic month that have commemorations.
type MonthEntries struct {
	Month     int          `json:"month" yaml:"month"`
	MonthName string       `json:"month_name" yaml:"month_name"`
	Days      []DayEntries `json:"days" yaml:"days"`
}

// LookupMonth returns the commemorated days of a Coptic month in day order.
// Days without any record are left out.
func (r *Resolver) LookupMonth(month int) (*MonthEntries, error) {
	if err := ValidateCopticDay(month, 1); err != nil {
		return nil, err
	}

	out := &MonthEntries{
		Month:     month,
		MonthName: calendar.CopticMonthName(month),
		Days:      []DayEntries{},
	}
	for day := 1; calendar.ValidCopticDay(month, day); day++ {
		entries, err := r.Lookup(month, day)
		if err != nil {
			return nil, err
		}
		if len(entries.Records) > 0 {
			out.Days = append(out.Days, *entries)
		}
	}
	return out, nil
}

// Coverage reports the Coptic days the commemorations table leaves empty.
func (r *Resolver) Coverage() *CoverageReport {
	if r.commemorations == nil {
		return Coverage(emptyCommemorations{})
	}
	return Coverage(r.commemorations)
}

type emptyCommemorations struct{}

func (emptyCommemorations) Lookup(month, day int) []synaxaire.Commemoration {
	return []synaxaire.Commemoration{}
}
