package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identity and audit fields shared by every persisted
// entity. CreatedByID, ModifiedByID and OwnerID reference users(id) and
// stay nullable so records survive the deletion of the referenced user.
type Base struct {
	ID           uuid.UUID  `gorm:"primaryKey;type:text"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime:false"`
	CreatedByID  *uuid.UUID `gorm:"type:text"`
	ModifiedAt   time.Time  `gorm:"autoUpdateTime:false"`
	ModifiedByID *uuid.UUID `gorm:"type:text"`
	OwnerID      *uuid.UUID `gorm:"type:text"`
}

// Record is implemented by every entity embedding Base.
type Record interface {
	Audit() *Base
}

func (b *Base) Audit() *Base {
	return b
}

// BeforeCreate assigns the identifier and creation timestamp exactly once.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

// BeforeSave touches ModifiedAt on every persisted mutation.
func (b *Base) BeforeSave(tx *gorm.DB) error {
	b.ModifiedAt = time.Now().UTC()
	return nil
}

// ApplyUpdate merges the mutable base fields of 'in' onto the receiver.
// Identity and creation audit fields are never overwritten.
func (b *Base) ApplyUpdate(in *Base) {
	if !equalRef(b.OwnerID, in.OwnerID) {
		b.OwnerID = in.OwnerID
	}
	b.ModifiedByID = in.ModifiedByID
}

// SameIdentity reports whether both records carry the same non-nil ID.
func SameIdentity(a, b Record) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Audit().ID != uuid.Nil && a.Audit().ID == b.Audit().ID
}

func equalRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
