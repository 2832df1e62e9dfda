package engine

import "fmt"

// ValidationError reports a malformed or missing baby/recipe reference.
// Surfaced to the caller immediately, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a missing entry in the nutrient-target or
// allergen-ceiling reference tables. It is fatal for the request: an
// incomplete safety model must abort, never silently skip a check.
type ConfigurationError struct {
	Table     string
	AgeMonths int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no %s entry covers age %d months", e.Table, e.AgeMonths)
}
