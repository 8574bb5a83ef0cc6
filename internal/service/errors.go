package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports structural input violations, one message per
// failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// violations accumulates field errors during input validation.
type violations map[string]string

func (v violations) add(field, message string) {
	v[field] = message
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}
