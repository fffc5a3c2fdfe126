package model

import "strings"

// Draft is add-item form input.
type Draft struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Qty      any    `json:"qty"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
}

// Validate trims the text fields, rejects empty ones and coerces the
// quantity. The returned item has no id, status or timestamp yet.
func (d Draft) Validate() (Item, error) {
	item := Item{
		Category:  strings.TrimSpace(d.Category),
		Name:      strings.TrimSpace(d.Name),
		Qty:       CoerceQty(d.Qty),
		Unit:      strings.TrimSpace(d.Unit),
		Location:  strings.TrimSpace(d.Location),
		CheckedBy: []string{},
	}

	required := []struct {
		field string
		value string
	}{
		{"name", item.Name},
		{"category", item.Category},
		{"unit", item.Unit},
		{"location", item.Location},
	}
	for _, r := range required {
		if r.value == "" {
			return Item{}, &ValidationError{Field: r.field, Message: "required"}
		}
	}

	return item, nil
}
