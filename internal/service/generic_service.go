package service

import (
	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
	"crudkit/internal/domain/paging"
	"crudkit/internal/domain/sorting"

	"github.com/google/uuid"
)

// Repository is the persistence contract the generic service runs on.
// Lookups return (nil, nil) for missing rows; errors are reserved for
// storage failures.
type Repository[T any, PT interface {
	entity.Record
	*T
}] interface {
	FindByID(id uuid.UUID) (PT, error)
	FindByIDAndOwner(id, owner uuid.UUID) (PT, error)
	FindAll(sort []sorting.Directive) ([]PT, error)
	FindPage(page, size int, sort []sorting.Directive) (*paging.Page[PT], error)
	Save(e PT) error
	Delete(e PT) error
}

// Generic orchestrates repository and bridge into the shared CRUD
// semantics. Entity-specific behavior comes in through the exists probe
// and the merge func; every service call is one logical transaction
// against the storage collaborator.
type Generic[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}] struct {
	resource string
	repo     Repository[T, PT]
	bridge   *Bridge[T, PT, D, PD]
	exists   func(e PT) (bool, error)
	merge    func(current, incoming PT)
}

func NewGeneric[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}](
	resource string,
	repo Repository[T, PT],
	bridge *Bridge[T, PT, D, PD],
	exists func(PT) (bool, error),
	merge func(current, incoming PT),
) *Generic[T, PT, D, PD] {
	return &Generic[T, PT, D, PD]{
		resource: resource,
		repo:     repo,
		bridge:   bridge,
		exists:   exists,
		merge:    merge,
	}
}

// Add persists a new entity unless one of its natural uniqueness keys
// is already taken. A conflict is reported as (false, nil) and performs
// no write.
func (s *Generic[T, PT, D, PD]) Add(e PT) (bool, error) {
	found, err := s.exists(e)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	if err := s.repo.Save(e); err != nil {
		return false, err
	}
	return true, nil
}

// Update loads the persisted entity by id, merges the incoming mutable
// fields onto it and persists the result. Identity and creation audit
// fields are never overwritten.
func (s *Generic[T, PT, D, PD]) Update(incoming PT) (PT, error) {
	id := incoming.Audit().ID

	current, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, s.NotFound(id)
	}

	s.merge(current, incoming)
	if err := s.repo.Save(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Generic[T, PT, D, PD]) DeleteByID(id uuid.UUID) error {
	e, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return s.NotFound(id)
	}
	return s.repo.Delete(e)
}

func (s *Generic[T, PT, D, PD]) FindByID(id uuid.UUID) (PT, error) {
	return s.repo.FindByID(id)
}

func (s *Generic[T, PT, D, PD]) FindAll(sort []sorting.Directive) ([]PT, error) {
	return s.repo.FindAll(sort)
}

func (s *Generic[T, PT, D, PD]) FindPage(page, size int, sort []sorting.Directive) (*paging.Page[PT], error) {
	return s.repo.FindPage(page, size, sort)
}

func (s *Generic[T, PT, D, PD]) ToEntity(dto PD) (PT, error) {
	return s.bridge.ToEntity(dto)
}

func (s *Generic[T, PT, D, PD]) ToDTO(e PT) PD {
	return s.bridge.ToDTO(e)
}

func (s *Generic[T, PT, D, PD]) ToDTOList(entities []PT) []PD {
	return s.bridge.ToDTOList(entities)
}

func (s *Generic[T, PT, D, PD]) NotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Resource: s.resource, ID: id}
}
