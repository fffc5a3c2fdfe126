package persist

import "fmt"

// PersistenceError reports a failed read or write against a backend. Local
// state is never rolled back when one is returned.
type PersistenceError struct {
	Op     string
	ItemID int64
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.ItemID != 0 {
		return fmt.Sprintf("persisting %s of item %d: %v", e.Op, e.ItemID, e.Err)
	}
	return fmt.Sprintf("persisting %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// APIError is a non-2xx response from the hosted table API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("table api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("table api: %d: %s", e.StatusCode, e.Message)
}
