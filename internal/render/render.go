// Package render turns a resolved monthly program into a document.
package render

import (
	"fmt"
	"strings"

	"github.com/zapponejosh/synaxaire-program/internal/calendar"
	"github.com/zapponejosh/synaxaire-program/internal/program"
	"github.com/zapponejosh/synaxaire-program/internal/synaxaire"
)

// Program is everything a sink needs to produce one document.
type Program struct {
	Year        int
	Month       int
	FrenchVerse string
	ArabicVerse string
	Days        []program.ResolvedDay
}

// Sink produces a document from a program.
type Sink interface {
	// ContentType is the MIME type of the produced bytes.
	ContentType() string
	// Extension is the file extension without a leading dot.
	Extension() string
	Render(p Program) ([]byte, error)
}

// Filename returns the download name of a program rendered by s.
func Filename(s Sink, year, month int) string {
	return fmt.Sprintf("program_%d_%d.%s", year, month, s.Extension())
}

// Title is the document heading, e.g. "Programme du mois 1/2024".
func (p Program) Title() string {
	return fmt.Sprintf("Programme du mois %d/%d", p.Month, p.Year)
}

var bucketLabels = map[synaxaire.Bucket]string{
	synaxaire.BucketMartyrs:        "Martyrs",
	synaxaire.BucketSaints:         "Saints",
	synaxaire.BucketCommemorations: "Commémorations",
	synaxaire.BucketOther:          "Autres",
}

// BucketLabel returns the French heading of a commemoration bucket.
func BucketLabel(b synaxaire.Bucket) string {
	return bucketLabels[b]
}

// dateLines returns the two lines of the date cell:
// "Dimanche 07-01" and "28 Kiahk 1740".
func dateLines(d program.ResolvedDay) []string {
	return []string{
		calendar.FormatGregorian(d.Gregorian.Time()),
		d.Coptic.String(),
	}
}

// synaxaireLines flattens the buckets into headed lines, blank line
// between sections.
func synaxaireLines(b synaxaire.Buckets) []string {
	var lines []string
	for i, s := range b.Sections() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, BucketLabel(s.Bucket)+" :")
		for _, item := range s.Items {
			lines = append(lines, "- "+item)
		}
	}
	return lines
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
