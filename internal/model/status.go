package model

import "strings"

// Status is the derived stock-level classification of an item. The values are
// the fixed-language labels stored in every persisted row.
type Status string

// Item statuses.
const (
	StatusNormal Status = "ปกติ"
	StatusLow    Status = "ใกล้หมด"
	StatusEmpty  Status = "หมด"
)

// DefaultThreshold is the quantity at or below which a non-empty item is LOW.
const DefaultThreshold = 3

// Statuses lists every status in display order.
var Statuses = []Status{StatusNormal, StatusLow, StatusEmpty}

// ComputeStatus maps a quantity and a low-stock threshold to a status.
// The threshold must already be clamped with ClampThreshold.
func ComputeStatus(qty, threshold int) Status {
	switch {
	case qty <= 0:
		return StatusEmpty
	case qty <= threshold:
		return StatusLow
	default:
		return StatusNormal
	}
}

// ClampThreshold enforces the minimum threshold of 1.
func ClampThreshold(threshold int) int {
	if threshold < 1 {
		return 1
	}
	return threshold
}

// Name returns the English name of the status (NORMAL, LOW or EMPTY).
func (s Status) Name() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusLow:
		return "LOW"
	case StatusEmpty:
		return "EMPTY"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusNormal || s == StatusLow || s == StatusEmpty
}

// ParseStatus accepts either the stored label or the English name in any case.
func ParseStatus(v string) (Status, bool) {
	v = strings.TrimSpace(v)
	for _, s := range Statuses {
		if v == string(s) || strings.EqualFold(v, s.Name()) {
			return s, true
		}
	}
	return "", false
}
