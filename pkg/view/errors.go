package view

import "fmt"

// ConfigurationError reports an invalid view parameter. It is returned at
// construction time; a ViewState that exists is always valid.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("view: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}
