package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/lib/pq"
)

// Dialect adapts the items statements to a SQL engine.
type Dialect struct {
	// Name identifies the engine ("sqlite" or "postgres").
	Name string

	bind     func(n int) string
	listArg  func(v []string) (any, error)
	listDest func() listDest
}

type listDest interface {
	dest() any
	value() []string
}

// SQLite stores checked_by as JSON text and binds with "?".
var SQLite = Dialect{
	Name: "sqlite",
	bind: func(int) string { return "?" },
	listArg: func(v []string) (any, error) {
		if v == nil {
			v = []string{}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding checked_by: %w", err)
		}
		return string(data), nil
	},
	listDest: func() listDest { return &jsonList{} },
}

// Postgres stores checked_by as text[] and binds with "$n".
var Postgres = Dialect{
	Name: "postgres",
	bind: func(n int) string { return "$" + strconv.Itoa(n) },
	listArg: func(v []string) (any, error) {
		if v == nil {
			v = []string{}
		}
		return pq.Array(v), nil
	},
	listDest: func() listDest { return &pqList{} },
}

type jsonList struct{ raw sql.NullString }

func (l *jsonList) dest() any { return &l.raw }

// value tolerates malformed JSON; the row decoder treats it as no reviewers.
func (l *jsonList) value() []string {
	var out []string
	if l.raw.Valid {
		_ = json.Unmarshal([]byte(l.raw.String), &out)
	}
	return out
}

type pqList struct{ arr pq.StringArray }

func (l *pqList) dest() any       { return &l.arr }
func (l *pqList) value() []string { return []string(l.arr) }

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTable reports whether name is safe to splice into a statement.
func ValidTable(name string) bool {
	return identRe.MatchString(name)
}
