package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQty caps coerced quantities so they always fit an int on every platform.
const MaxQty = math.MaxInt32

var maxQtyDecimal = decimal.NewFromInt(MaxQty)

// maxQtyDigits is the number of decimal digits in MaxQty.
const maxQtyDigits = 10

// Row is an untrusted record from a backend or from stored JSON. Field
// presence and types are never assumed.
type Row map[string]any

// DecodeRows parses a JSON array of rows, keeping numbers exact.
func DecodeRows(data []byte) ([]Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	return rows, nil
}

// DecodeRow parses a single JSON object row.
func DecodeRow(data []byte) (Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var row Row
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("decoding row: %w", err)
	}
	if row == nil {
		return nil, &DecodeError{Field: "", Reason: "row is null"}
	}
	return row, nil
}

// ItemFromRow builds a valid Item from an untrusted row. Missing or mistyped
// fields fall back to their defaults; only a missing or non-integer id is an
// error.
func ItemFromRow(r Row) (Item, error) {
	id, err := rowID(r["id"])
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:        id,
		Category:  rowString(r["category"], ""),
		Name:      rowString(r["name"], ""),
		Qty:       CoerceQty(r["qty"]),
		Unit:      rowString(r["unit"], DefaultUnit),
		Status:    StatusNormal,
		Location:  rowString(r["location"], ""),
		CheckedBy: []string{},
	}

	if s, ok := r["status"].(string); ok {
		if st, ok := ParseStatus(s); ok {
			item.Status = st
		}
	}

	checked, ok := r["checked_by"]
	if !ok {
		checked = r["checkedBy"]
	}
	item.CheckedBy = rowStrings(checked)

	updated, ok := r["last_updated"]
	if !ok {
		updated = r["lastUpdated"]
	}
	if s, ok := updated.(string); ok && s != "" {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t = t.UTC()
			item.LastUpdated = &t
		}
	}

	return item, nil
}

// ToRow converts an item to the remote row shape. A zero id is omitted so
// the backend can assign one.
func ToRow(item Item) Row {
	checked := item.CheckedBy
	if checked == nil {
		checked = []string{}
	}
	r := Row{
		"category":   item.Category,
		"name":       item.Name,
		"qty":        item.Qty,
		"unit":       item.Unit,
		"status":     string(item.Status),
		"location":   item.Location,
		"checked_by": checked,
	}
	if item.ID != 0 {
		r["id"] = item.ID
	}
	if item.LastUpdated != nil {
		r["last_updated"] = item.LastUpdated.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// CoerceQty converts numeric-like input to a non-negative quantity. Anything
// that is not a finite number becomes 0; fractions are truncated.
func CoerceQty(v any) int {
	var d decimal.Decimal
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return clampQty(decimal.NewFromInt(int64(n)))
	case int32:
		return clampQty(decimal.NewFromInt(int64(n)))
	case int64:
		return clampQty(decimal.NewFromInt(n))
	case float32:
		return CoerceQty(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		d = decimal.NewFromFloat(n)
	case json.Number:
		parsed, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0
		}
		d = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return 0
		}
		d = parsed
	default:
		return 0
	}
	return clampQty(d)
}

func clampQty(d decimal.Decimal) int {
	if d.Sign() <= 0 {
		return 0
	}
	// Bound the integer digit count first: comparing or truncating rescales
	// the coefficient to the other operand's exponent.
	intDigits := int64(d.NumDigits()) + int64(d.Exponent())
	if intDigits <= 0 {
		return 0
	}
	if intDigits > maxQtyDigits {
		return MaxQty
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxQtyDecimal) {
		return MaxQty
	}
	return int(d.IntPart())
}

func rowID(v any) (int64, error) {
	var id int64
	switch n := v.(type) {
	case nil:
		return 0, &DecodeError{Field: "id", Reason: "missing"}
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 0, &DecodeError{Field: "id", Reason: "not an integer"}
		}
		id = parsed
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, &DecodeError{Field: "id", Reason: "not an integer"}
		}
		id = int64(n)
	case int:
		id = int64(n)
	case int64:
		id = n
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, &DecodeError{Field: "id", Reason: "not an integer"}
		}
		id = parsed
	default:
		return 0, &DecodeError{Field: "id", Reason: fmt.Sprintf("unexpected type %T", v)}
	}
	if id <= 0 {
		return 0, &DecodeError{Field: "id", Reason: "must be positive"}
	}
	return id, nil
}

func rowString(v any, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func rowStrings(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []any:
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}
	return out
}
