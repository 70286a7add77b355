package program

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()

	commemorations := synaxaire.NewCommemorationTable([]synaxaire.Commemoration{
		{CopticMonth: 4, CopticDay: 28, MonthName: "Kiahk", Description: "Saint Jean", Category: synaxaire.CategoryDeath},
		{CopticMonth: 4, CopticDay: 28, MonthName: "Kiahk", Description: "Saints Innocents", Category: synaxaire.CategoryMartyrdom, IsMartyr: true},
		{CopticMonth: 4, CopticDay: 22, MonthName: "Kiahk", Description: "Archange Gabriel", Category: synaxaire.CategoryCommemoration},
		// keyed on a Coptic date that collides with a Gregorian one
		{CopticMonth: 1, CopticDay: 7, MonthName: "Tout", Description: "Never on 7 January", Category: synaxaire.CategoryOther},
	})

	schedule, err := synaxaire.NewScheduleTable([]synaxaire.ScheduleEntry{
		{Weekday: 7, Time: "10:00", Event: "Divine Liturgy"},
		{Weekday: 3, Time: "19:30", Event: "Bible Study"},
	})
	if err != nil {
		t.Fatalf("NewScheduleTable() error = %v", err)
	}

	return NewResolver(commemorations, schedule)
}

func TestResolve_DayCounts(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		year, month int
		want        int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2024, 1, 31},
		{2024, 4, 30},
	}

	for _, tt := range tests {
		days, err := r.Resolve(tt.year, tt.month)
		if err != nil {
			t.Fatalf("Resolve(%d, %d) error = %v", tt.year, tt.month, err)
		}
		if len(days) != tt.want {
			t.Errorf("Resolve(%d, %d) returned %d days, want %d", tt.year, tt.month, len(days), tt.want)
		}
		for i, d := range days {
			if d.Gregorian.Day != i+1 || d.Gregorian.Month != tt.month || d.Gregorian.Year != tt.year {
				t.Errorf("Resolve(%d, %d)[%d] = %s, want day %d", tt.year, tt.month, i, d.Gregorian, i+1)
			}
		}
	}
}

func TestResolve_JanuarySeventh(t *testing.T) {
	r := testResolver(t)

	days, err := r.Resolve(2024, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	d := days[6]
	if d.Weekday != 7 {
		t.Errorf("weekday = %d, want 7 (Sunday)", d.Weekday)
	}
	if want := (calendar.CopticDate{Year: 1740, Month: 4, Day: 28}); d.Coptic != want {
		t.Errorf("coptic = %+v, want %+v", d.Coptic, want)
	}
	if d.ScheduleTime != "10:00" || d.ScheduleEvent != "Divine Liturgy" {
		t.Errorf("schedule = %q %q, want Sunday liturgy", d.ScheduleTime, d.ScheduleEvent)
	}
	if !reflect.DeepEqual(d.Commemorations.Martyrs, []string{"Saints Innocents"}) {
		t.Errorf("martyrs = %v", d.Commemorations.Martyrs)
	}
	if !reflect.DeepEqual(d.Commemorations.Saints, []string{"Saint Jean"}) {
		t.Errorf("saints = %v", d.Commemorations.Saints)
	}
	for _, desc := range d.Commemorations.Other {
		if desc == "Never on 7 January" {
			t.Error("lookup used the Gregorian (month, day) instead of the Coptic one")
		}
	}

	if first := days[0]; first.Coptic.Month != 4 || first.Coptic.Day != 22 ||
		!reflect.DeepEqual(first.Commemorations.Commemorations, []string{"Archange Gabriel"}) {
		t.Errorf("1 January = %+v", first)
	}
}

func TestResolve_EmptyLookupAndSchedule(t *testing.T) {
	r := testResolver(t)

	days, err := r.Resolve(2024, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// 2024-01-02 is a Tuesday with no schedule and no commemorations.
	d := days[1]
	if d.Weekday != 2 {
		t.Fatalf("weekday = %d, want 2", d.Weekday)
	}
	if d.ScheduleTime != "" || d.ScheduleEvent != "" {
		t.Errorf("schedule = %q %q, want empty", d.ScheduleTime, d.ScheduleEvent)
	}
	if !d.Commemorations.Empty() {
		t.Errorf("commemorations = %+v, want empty", d.Commemorations)
	}
	if d.Commemorations.Martyrs == nil || d.Commemorations.Other == nil {
		t.Error("empty buckets must be non-nil")
	}
}

func TestResolve_Weekdays(t *testing.T) {
	r := testResolver(t)

	days, err := r.Resolve(2024, 9)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, d := range days {
		if want := calendar.ISOWeekday(d.Gregorian.Time()); d.Weekday != want {
			t.Errorf("%s weekday = %d, want %d", d.Gregorian, d.Weekday, want)
		}
		if d.Weekday < 1 || d.Weekday > 7 {
			t.Errorf("%s weekday %d out of range", d.Gregorian, d.Weekday)
		}
	}
	// 2024-09-11 is the Coptic new year.
	if got := days[10].Coptic; got != (calendar.CopticDate{Year: 1741, Month: 1, Day: 1}) {
		t.Errorf("2024-09-11 coptic = %+v", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := testResolver(t)

	a, err := r.Resolve(2024, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	b, err := r.Resolve(2024, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("Resolve() returned different results for the same month")
	}
}

func TestResolve_Validation(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name        string
		year, month int
		field       string
	}{
		{"missing year", 0, 1, "year"},
		{"year too small", 100, 1, "year"},
		{"year too large", 10000, 1, "year"},
		{"month zero", 2024, 0, "month"},
		{"month 13", 2024, 13, "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := r.Resolve(tt.year, tt.month)
			if days != nil {
				t.Errorf("Resolve() returned %d days alongside an error", len(days))
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Resolve() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if Kind(err) != KindValidation {
				t.Errorf("Kind() = %q, want %q", Kind(err), KindValidation)
			}
		})
	}
}

func TestResolve_DegradedTables(t *testing.T) {
	// Tables that failed to load resolve with empty data.
	r := NewResolver(synaxaire.NewCommemorationTable(nil), synaxaire.EmptySchedule())

	days, err := r.Resolve(2024, 2)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(days) != 29 {
		t.Fatalf("Resolve() returned %d days, want 29", len(days))
	}
	for _, d := range days {
		if !d.Commemorations.Empty() || d.ScheduleEvent != "" {
			t.Errorf("%s = %+v, want empty", d.Gregorian, d)
		}
	}
}

func TestLookup(t *testing.T) {
	r := testResolver(t)

	got, err := r.Lookup(4, 28)
	if err != nil {
		t.Fatalf("Lookup(4, 28) error = %v", err)
	}
	if got.MonthName != "Kiahk" || len(got.Records) != 2 || got.Commemorations.Count() != 2 {
		t.Errorf("Lookup(4, 28) = %+v", got)
	}

	empty, err := r.Lookup(13, 6)
	if err != nil {
		t.Fatalf("Lookup(13, 6) error = %v", err)
	}
	if empty.Records == nil || len(empty.Records) != 0 {
		t.Errorf("Lookup(13, 6) records = %v, want empty slice", empty.Records)
	}

	for _, bad := range [][2]int{{0, 1}, {14, 1}, {1, 0}, {1, 31}, {13, 7}} {
		if _, err := r.Lookup(bad[0], bad[1]); Kind(err) != KindValidation {
			t.Errorf("Lookup(%d, %d) kind = %q, want %q", bad[0], bad[1], Kind(err), KindValidation)
		}
	}
}

func TestLookupMonth(t *testing.T) {
	r := testResolver(t)

	got, err := r.LookupMonth(4)
	if err != nil {
		t.Fatalf("LookupMonth(4) error = %v", err)
	}
	if got.MonthName != "Kiahk" || len(got.Days) != 2 {
		t.Fatalf("LookupMonth(4) = %+v, want 2 days of Kiahk", got)
	}
	if got.Days[0].Day != 22 || got.Days[1].Day != 28 {
		t.Errorf("days out of order: %d, %d", got.Days[0].Day, got.Days[1].Day)
	}
	if got.Days[1].Commemorations.Count() != 2 {
		t.Errorf("day 28 buckets = %+v", got.Days[1].Commemorations)
	}

	empty, err := r.LookupMonth(13)
	if err != nil {
		t.Fatalf("LookupMonth(13) error = %v", err)
	}
	if empty.Days == nil || len(empty.Days) != 0 {
		t.Errorf("LookupMonth(13) days = %v, want empty slice", empty.Days)
	}

	for _, bad := range []int{0, 14} {
		if _, err := r.LookupMonth(bad); Kind(err) != KindValidation {
			t.Errorf("LookupMonth(%d) kind = %q, want %q", bad, Kind(err), KindValidation)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ValidationError{Field: "year", Message: "is required"}, KindValidation},
		{&calendar.InvalidDateError{Year: 2023, Month: 2, Day: 29}, KindInvalidDate},
		{&synaxaire.DataLoadError{Table: synaxaire.TableSchedule, Err: errors.New("boom")}, KindDataLoad},
		{&RenderError{Format: "docx", Err: errors.New("boom")}, KindRender},
		{errors.New("other"), KindInternal},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRequest_Validate(t *testing.T) {
	ok := Request{Year: 2024, Month: 1, ArabicVerse: "فِي الْبَدْءِ كَانَ الْكَلِمَةُ"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (Request{Month: 1}).Validate(); Kind(err) != KindValidation {
		t.Errorf("Validate() without year kind = %q", Kind(err))
	}
	if err := (Request{Year: 2024}).Validate(); Kind(err) != KindValidation {
		t.Errorf("Validate() without month kind = %q", Kind(err))
	}
}
