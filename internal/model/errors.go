package model

import "fmt"

// ValidationError reports malformed add-item input. No state is mutated when
// it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DecodeError reports an untrusted row that cannot become an Item.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding row field %q: %s", e.Field, e.Reason)
}
