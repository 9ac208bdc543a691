// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package recommend

import "fmt"

// SchemaError reports bottle data missing a field the feature
// processor requires. Unlike a collection outage it is not recovered
// from; callers surface it to the client.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("schema error: missing %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("schema error: missing %s", e.Field)
}

// newSchemaError builds a SchemaError for a missing field.
func newSchemaError(field, format string, args ...interface{}) *SchemaError {
	return &SchemaError{Field: field, Detail: fmt.Sprintf(format, args...)}
}
