package synaxaire

// Commemoration is one Synaxarium entry for a Coptic day.
type Commemoration struct {
	CopticMonth int      `json:"coptic_month" yaml:"coptic_month"`
	CopticDay   int      `json:"coptic_day" yaml:"coptic_day"`
	MonthName   string   `json:"month_name,omitempty" yaml:"month_name,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	IsMartyr    bool     `json:"is_martyr" yaml:"is_martyr"`
}

type dateKey struct {
	month, day int
}

// CommemorationTable maps Coptic (month, day) to its commemorations.
// It is immutable after construction and safe for concurrent readers.
type CommemorationTable struct {
	byDate map[dateKey][]Commemoration
	count  int
}

// NewCommemorationTable builds a table from records, keeping their order
// within each day.
func NewCommemorationTable(records []Commemoration) *CommemorationTable {
	t := &CommemorationTable{byDate: make(map[dateKey][]Commemoration)}
	for _, r := range records {
		k := dateKey{r.CopticMonth, r.CopticDay}
		t.byDate[k] = append(t.byDate[k], r)
		t.count++
	}
	return t
}

// Lookup returns the commemorations of a Coptic day. The result is never
// nil and may be freely modified by the caller.
func (t *CommemorationTable) Lookup(month, day int) []Commemoration {
	if t == nil {
		return []Commemoration{}
	}
	records := t.byDate[dateKey{month, day}]
	out := make([]Commemoration, len(records))
	copy(out, records)
	return out
}

// Len returns the number of records in the table.
func (t *CommemorationTable) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}
