package service

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports that an identifier (optionally scoped to an
// owner) did not resolve to a record. Owner-scoped lookups raise the
// same error whether the record is missing or foreign-owned, so callers
// cannot probe for existence of records they do not own.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found, id = %s", e.Resource, e.ID)
}

// InvalidReferenceError reports a DTO reference that is not a valid
// identifier or does not resolve to an existing user.
type InvalidReferenceError struct {
	Field string
	Raw   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference: %q", e.Field, e.Raw)
}
