package formatter

import "fmt"

// FormatterError is returned when a registered formatter rejects a raw entity. It is never retried.
type FormatterError struct { //nolint:revive // name is part of the public error taxonomy
	Kind Kind
	// Field optionally names the offending field.
	Field string
	Err   error
}

func (e *FormatterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to format %s field %q: %v", e.Kind, e.Field, e.Err)
	}

	return fmt.Sprintf("failed to format %s: %v", e.Kind, e.Err)
}

func (e *FormatterError) Unwrap() error {
	return e.Err
}
