package synaxaire

import "fmt"

// ScheduleEntry is the recurring event of one weekday.
type ScheduleEntry struct {
	Weekday int    `json:"weekday" yaml:"weekday"` // 1=Monday .. 7=Sunday
	Time    string `json:"time" yaml:"time"`
	Event   string `json:"event" yaml:"event"` // may span several lines
}

// ScheduleTable maps weekdays to at most one recurring event.
// It is immutable after construction.
type ScheduleTable struct {
	byWeekday map[int]ScheduleEntry
}

// NewScheduleTable builds a table, rejecting weekdays outside 1-7 and
// duplicate weekdays.
func NewScheduleTable(entries []ScheduleEntry) (*ScheduleTable, error) {
	t := &ScheduleTable{byWeekday: make(map[int]ScheduleEntry, len(entries))}
	for _, e := range entries {
		if e.Weekday < 1 || e.Weekday > 7 {
			return nil, fmt.Errorf("weekday %d out of range 1-7", e.Weekday)
		}
		if _, dup := t.byWeekday[e.Weekday]; dup {
			return nil, fmt.Errorf("duplicate entry for weekday %d", e.Weekday)
		}
		t.byWeekday[e.Weekday] = e
	}
	return t, nil
}

// EmptySchedule returns a table with no entries.
func EmptySchedule() *ScheduleTable {
	return &ScheduleTable{byWeekday: map[int]ScheduleEntry{}}
}

// Lookup returns the entry for a weekday, if any.
func (t *ScheduleTable) Lookup(weekday int) (ScheduleEntry, bool) {
	if t == nil {
		return ScheduleEntry{}, false
	}
	e, ok := t.byWeekday[weekday]
	return e, ok
}

// Len returns the number of configured weekdays.
func (t *ScheduleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byWeekday)
}
