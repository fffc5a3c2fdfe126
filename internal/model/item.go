package model

import (
	"slices"
	"time"
)

// DefaultUnit is used when a row or form carries no unit.
const DefaultUnit = "ชิ้น"

// Item represents one tracked consumable and its stock level.
type Item struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Qty         int        `json:"qty"`
	Unit        string     `json:"unit"`
	Status      Status     `json:"status"`
	Location    string     `json:"location"`
	CheckedBy   []string   `json:"checkedBy"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	out.CheckedBy = slices.Clone(i.CheckedBy)
	if out.CheckedBy == nil {
		out.CheckedBy = []string{}
	}
	if i.LastUpdated != nil {
		t := *i.LastUpdated
		out.LastUpdated = &t
	}
	return out
}

// Patch is a partial update of an item. Nil fields are left untouched.
// It marshals to the remote row column names.
type Patch struct {
	Qty         *int       `json:"qty,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	CheckedBy   *[]string  `json:"checked_by,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// Apply writes the non-nil fields of p onto item.
func (p Patch) Apply(item *Item) {
	if p.Qty != nil {
		item.Qty = *p.Qty
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.CheckedBy != nil {
		item.CheckedBy = slices.Clone(*p.CheckedBy)
		if item.CheckedBy == nil {
			item.CheckedBy = []string{}
		}
	}
	if p.LastUpdated != nil {
		t := *p.LastUpdated
		item.LastUpdated = &t
	}
}

// Columns lists the row columns the patch touches.
func (p Patch) Columns() []string {
	var cols []string
	if p.Qty != nil {
		cols = append(cols, "qty")
	}
	if p.Status != nil {
		cols = append(cols, "status")
	}
	if p.CheckedBy != nil {
		cols = append(cols, "checked_by")
	}
	if p.LastUpdated != nil {
		cols = append(cols, "last_updated")
	}
	return cols
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return len(p.Columns()) == 0
}
