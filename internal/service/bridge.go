package service

import (
	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"

	"github.com/google/uuid"
)

// Resolver validates user references while mapping DTOs to entities.
type Resolver interface {
	FindByID(id uuid.UUID) (*entity.User, error)
}

// Bridge converts between the persisted entity shape and the wire DTO
// shape. The base identity and audit fields are handled here; the two
// copy funcs supply the type-specific fields. A nil resolver skips
// reference validation (fast path for callers that guarantee relation
// integrity themselves).
type Bridge[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}] struct {
	users        Resolver
	copyToEntity func(dto PD, e PT)
	copyToDTO    func(e PT, dto PD)
}

func NewBridge[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}](users Resolver, copyToEntity func(PD, PT), copyToDTO func(PT, PD)) *Bridge[T, PT, D, PD] {
	return &Bridge[T, PT, D, PD]{
		users:        users,
		copyToEntity: copyToEntity,
		copyToDTO:    copyToDTO,
	}
}

// ToEntity builds a fresh entity from the DTO. The DTO is never
// mutated. Identity and audit fields are taken over when present.
func (b *Bridge[T, PT, D, PD]) ToEntity(dto PD) (PT, error) {
	e := PT(new(T))
	base := e.Audit()
	meta := dto.Meta()

	if meta.ID != "" {
		id, err := uuid.Parse(meta.ID)
		if err != nil {
			return nil, &InvalidReferenceError{Field: "id", Raw: meta.ID}
		}
		base.ID = id
	}

	if meta.CreatedAt != nil {
		base.CreatedAt = *meta.CreatedAt
	}
	if meta.ModifiedAt != nil {
		base.ModifiedAt = *meta.ModifiedAt
	}

	var err error
	if base.CreatedByID, err = b.ref("created_by", meta.CreatedBy); err != nil {
		return nil, err
	}
	if base.ModifiedByID, err = b.ref("modified_by", meta.ModifiedBy); err != nil {
		return nil, err
	}
	if base.OwnerID, err = b.ref("owner", meta.Owner); err != nil {
		return nil, err
	}

	b.copyToEntity(dto, e)
	return e, nil
}

// ToDTO projects an entity onto a fresh DTO. References come out as
// bare identifier strings.
func (b *Bridge[T, PT, D, PD]) ToDTO(e PT) PD {
	dto := PD(new(D))
	meta := dto.Meta()
	base := e.Audit()

	if base.ID != uuid.Nil {
		meta.ID = base.ID.String()
	}
	if !base.CreatedAt.IsZero() {
		at := base.CreatedAt
		meta.CreatedAt = &at
	}
	if !base.ModifiedAt.IsZero() {
		at := base.ModifiedAt
		meta.ModifiedAt = &at
	}
	meta.CreatedBy = refString(base.CreatedByID)
	meta.ModifiedBy = refString(base.ModifiedByID)
	meta.Owner = refString(base.OwnerID)

	b.copyToDTO(e, dto)
	return dto
}

func (b *Bridge[T, PT, D, PD]) ToEntityList(dtos []PD) ([]PT, error) {
	entities := make([]PT, len(dtos))
	for i, dto := range dtos {
		e, err := b.ToEntity(dto)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (b *Bridge[T, PT, D, PD]) ToDTOList(entities []PT) []PD {
	dtos := make([]PD, len(entities))
	for i, e := range entities {
		dtos[i] = b.ToDTO(e)
	}
	return dtos
}

func (b *Bridge[T, PT, D, PD]) ref(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &InvalidReferenceError{Field: field, Raw: raw}
	}

	if b.users != nil {
		user, err := b.users.FindByID(id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, &InvalidReferenceError{Field: field, Raw: raw}
		}
	}
	return &id, nil
}

func refString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
