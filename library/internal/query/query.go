// Package query derives catalog views from the books of the ledger.
// Every function here is pure: the input slice is never reordered or modified.
package query

import (
	"sort"
	"strings"

	"github.com/Astemirdum/lumina-library/library/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Filter struct {
	Search   string
	Category string
	Status   model.StatusFilter
	Sort     model.SortMode
}

// Apply returns the books matching every predicate of f, ordered by f.Sort.
func Apply(books []model.Book, f Filter) []model.Book {
	needle := strings.ToLower(f.Search)
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if matchesSearch(b, needle) && matchesCategory(b, f.Category) && f.Status.Match(b.Status) {
			out = append(out, b)
		}
	}

	switch f.Sort {
	case model.SortShelfAsc:
		c := collate.New(language.Und, collate.Numeric, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Shelf, out[j].Shelf) < 0
		})
	case model.SortYearDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishYear > out[j].PublishYear
		})
	case model.SortYearAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PublishYear < out[j].PublishYear
		})
	}
	return out
}

func matchesSearch(b model.Book, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) ||
		strings.Contains(strings.ToLower(b.Shelf), needle) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func matchesCategory(b model.Book, category string) bool {
	return category == "" || category == model.CategoryAll || b.Category == category
}

// Categories lists the distinct categories in ascending order.
func Categories(books []model.Book) []string {
	seen := make(map[string]struct{}, len(books))
	out := make([]string, 0)
	for _, b := range books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	sort.Strings(out)
	return out
}

// CategoryBreakdown counts books per category in order of first appearance.
func CategoryBreakdown(books []model.Book) []model.CategoryCount {
	index := make(map[string]int)
	out := make([]model.CategoryCount, 0)
	for _, b := range books {
		i, ok := index[b.Category]
		if !ok {
			i = len(out)
			index[b.Category] = i
			out = append(out, model.CategoryCount{Name: b.Category})
		}
		out[i].Value++
	}
	return out
}
