package contract

import "time"

// Base is the wire-level projection of an entity's identity and audit
// fields. User references travel as bare identifier strings, never as
// embedded objects, so serialized graphs stay flat.
type Base struct {
	ID         string     `json:"id,omitempty" validate:"omitempty,uuid"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	CreatedBy  string     `json:"created_by,omitempty" validate:"omitempty,uuid"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	ModifiedBy string     `json:"modified_by,omitempty" validate:"omitempty,uuid"`
	Owner      string     `json:"owner,omitempty" validate:"omitempty,uuid"`
}

// Projection is implemented by every DTO embedding Base.
type Projection interface {
	Meta() *Base
}

func (b *Base) Meta() *Base {
	return b
}
