// Package synaxaire holds the read-only lookup tables joined into a monthly
// program: the commemorations of the Synaxarium keyed by Coptic (month, day)
// and the recurring weekly schedule keyed by weekday.
package synaxaire

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category classifies a commemoration.
type Category string

const (
	CategoryMartyrdom     Category = "martyrdom"
	CategoryDeath         Category = "death"
	CategoryDeparture     Category = "departure"
	CategoryCommemoration Category = "commemoration"
	CategoryOther         Category = "other"
)

// categoryAliases maps folded source labels (French or English) to categories.
var categoryAliases = map[string]Category{
	"martyrdom":     CategoryMartyrdom,
	"martyr":        CategoryMartyrdom,
	"martyrs":       CategoryMartyrdom,
	"martyre":       CategoryMartyrdom,
	"death":         CategoryDeath,
	"deces":         CategoryDeath,
	"mort":          CategoryDeath,
	"departure":     CategoryDeparture,
	"depart":        CategoryDeparture,
	"commemoration": CategoryCommemoration,
	"souvenir":      CategoryCommemoration,
}

// ParseCategory maps free category text to a Category. Matching ignores
// case and diacritics, so "Commémoration" and "commemoration" are equal.
// Unknown text maps to CategoryOther.
func ParseCategory(text string) Category {
	if c, ok := categoryAliases[foldLabel(text)]; ok {
		return c
	}
	return CategoryOther
}

// IsSaint reports whether the category places a record among the saints.
func (c Category) IsSaint() bool {
	return c == CategoryDeath || c == CategoryDeparture
}

func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return cases.Fold().String(stripped)
}
