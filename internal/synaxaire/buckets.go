package synaxaire

// Bucket names a presentation group of commemorations.
type Bucket string

const (
	BucketMartyrs        Bucket = "martyrs"
	BucketSaints         Bucket = "saints"
	BucketCommemorations Bucket = "commemorations"
	BucketOther          Bucket = "other"
)

// Buckets holds the descriptions of a day's commemorations grouped for
// display. Every slice is non-nil.
type Buckets struct {
	Martyrs        []string `json:"martyrs" yaml:"martyrs"`
	Saints         []string `json:"saints" yaml:"saints"`
	Commemorations []string `json:"commemorations" yaml:"commemorations"`
	Other          []string `json:"other" yaml:"other"`
}

// Section is one non-empty bucket in display order.
type Section struct {
	Bucket Bucket
	Items  []string
}

// Group places each record in the first bucket it matches, in the order
// martyrs, saints, commemorations, other. The martyr flag wins over the
// category text.
func Group(records []Commemoration) Buckets {
	b := Buckets{
		Martyrs:        []string{},
		Saints:         []string{},
		Commemorations: []string{},
		Other:          []string{},
	}
	for _, r := range records {
		switch {
		case r.IsMartyr:
			b.Martyrs = append(b.Martyrs, r.Description)
		case r.Category.IsSaint():
			b.Saints = append(b.Saints, r.Description)
		case r.Category == CategoryCommemoration:
			b.Commemorations = append(b.Commemorations, r.Description)
		default:
			b.Other = append(b.Other, r.Description)
		}
	}
	return b
}

// Count returns the number of grouped descriptions.
func (b Buckets) Count() int {
	return len(b.Martyrs) + len(b.Saints) + len(b.Commemorations) + len(b.Other)
}

// Empty reports whether no descriptions were grouped.
func (b Buckets) Empty() bool {
	return b.Count() == 0
}

// Sections returns the non-empty buckets in precedence order.
func (b Buckets) Sections() []Section {
	var out []Section
	for _, s := range []Section{
		{BucketMartyrs, b.Martyrs},
		{BucketSaints, b.Saints},
		{BucketCommemorations, b.Commemorations},
		{BucketOther, b.Other},
	} {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}
