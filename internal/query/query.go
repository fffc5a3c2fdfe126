// Package query derives filtered views, summary counts and filter options
// from an item collection. Every function is pure.
package query

import (
	"net/url"
	"strings"

	"github.com/biomintech/labstock/internal/model"
)

// All is the wildcard sentinel for categorical filters.
const All = "ALL"

// allLabel is the wildcard label used by the Thai interface.
const allLabel = "ทั้งหมด"

// Spec is a filter specification. All filters are ANDed.
type Spec struct {
	Text          string `json:"q"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	Location      string `json:"location"`
	OnlyAttention bool   `json:"attention"`
}

// Summary holds counts over the full collection.
type Summary struct {
	Total  int `json:"total"`
	Normal int `json:"normal"`
	Low    int `json:"low"`
	Empty  int `json:"empty"`
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All) || v == allLabel
}

// Match reports whether item satisfies every filter of spec.
func (s Spec) Match(item model.Item) bool {
	if q := strings.ToLower(s.Text); q != "" {
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Category), q) &&
			!strings.Contains(strings.ToLower(item.Location), q) {
			return false
		}
	}
	if !isAll(s.Category) && item.Category != s.Category {
		return false
	}
	if !isAll(s.Status) {
		st, ok := model.ParseStatus(s.Status)
		if !ok || item.Status != st {
			return false
		}
	}
	if !isAll(s.Location) && item.Location != s.Location {
		return false
	}
	if s.OnlyAttention && item.Status == model.StatusNormal {
		return false
	}
	return true
}

// View returns the items matching spec in collection order.
func View(items []model.Item, spec Spec) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if spec.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Summarize counts items by status.
func Summarize(items []model.Item) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case model.StatusNormal:
			s.Normal++
		case model.StatusLow:
			s.Low++
		case model.StatusEmpty:
			s.Empty++
		}
	}
	return s
}

// Options returns the distinct categories and locations in first-seen order,
// each prefixed with All.
func Options(items []model.Item) (categories, locations []string) {
	categories = []string{All}
	locations = []string{All}
	seenCat := make(map[string]bool)
	seenLoc := make(map[string]bool)
	for _, item := range items {
		if !seenCat[item.Category] {
			seenCat[item.Category] = true
			categories = append(categories, item.Category)
		}
		if !seenLoc[item.Location] {
			seenLoc[item.Location] = true
			locations = append(locations, item.Location)
		}
	}
	return categories, locations
}

// Statuses returns the status filter options.
func Statuses() []string {
	out := []string{All}
	for _, s := range model.Statuses {
		out = append(out, string(s))
	}
	return out
}

// SpecFromValues builds a Spec from URL query parameters
// (q, category, status, location, attention).
func SpecFromValues(v url.Values) Spec {
	attention := strings.ToLower(strings.TrimSpace(v.Get("attention")))
	return Spec{
		Text:          v.Get("q"),
		Category:      v.Get("category"),
		Status:        v.Get("status"),
		Location:      v.Get("location"),
		OnlyAttention: attention == "1" || attention == "true" || attention == "yes",
	}
}
