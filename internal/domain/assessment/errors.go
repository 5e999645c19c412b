package assessment

import "fmt"

// InputError reports a snapshot field that is present but structurally
// invalid. It is the only error kind the core raises; absent fields are
// never errors.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func inputErr(field, format string, args ...interface{}) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
