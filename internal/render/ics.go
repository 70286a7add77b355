package render

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/zapponejosh/synaxaire-program/internal/program"
)

const icsProductID = "-//synaxaire-program//Monthly Program//FR"

// ICSSink renders a program as an iCalendar feed with one all-day event
// per day.
type ICSSink struct {
	// Now stamps the events. Defaults to time.Now.
	Now func() time.Time
}

func (ICSSink) ContentType() string { return "text/calendar; charset=utf-8" }

func (ICSSink) Extension() string { return "ics" }

// Render encodes one VEVENT per resolved day. The verses are carried as
// the calendar description.
func (s ICSSink) Render(p Program) ([]byte, error) {
	if len(p.Days) == 0 {
		return nil, &program.RenderError{Format: "ics", Err: errors.New("program has no days")}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	stamp := now().UTC()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)
	cal.Props.SetText("X-WR-CALNAME", p.Title())
	if desc := strings.TrimSpace(strings.Join([]string{p.FrenchVerse, p.ArabicVerse}, "\n")); desc != "" {
		cal.Props.SetText("X-WR-CALDESC", desc)
	}

	for _, d := range p.Days {
		start := d.Gregorian.Time()

		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, d.Gregorian.String()+"@synaxaire-program")
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		vevent.Props.SetDate(ical.PropDateTimeStart, start)
		vevent.Props.SetDate(ical.PropDateTimeEnd, start.AddDate(0, 0, 1))
		vevent.Props.SetText(ical.PropSummary, eventSummary(d))
		if desc := eventDescription(d); desc != "" {
			vevent.Props.SetText(ical.PropDescription, desc)
		}

		cal.Children = append(cal.Children, vevent.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, &program.RenderError{Format: "ics", Err: err}
	}
	return buf.Bytes(), nil
}

func eventSummary(d program.ResolvedDay) string {
	summary := d.Coptic.String()
	if d.ScheduleEvent != "" {
		summary += " - " + strings.Join(splitLines(d.ScheduleEvent), ", ")
	}
	return summary
}

func eventDescription(d program.ResolvedDay) string {
	var lines []string
	if d.ScheduleTime != "" || d.ScheduleEvent != "" {
		lines = append(lines, strings.TrimSpace(d.ScheduleTime+" "+d.ScheduleEvent))
	}
	if syn := synaxaireLines(d.Commemorations); len(syn) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, syn...)
	}
	return strings.Join(lines, "\n")
}
