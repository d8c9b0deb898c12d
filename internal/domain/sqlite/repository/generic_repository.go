package repository

import (
	"errors"

	"crudkit/internal/domain/entity"
	"crudkit/internal/domain/paging"
	"crudkit/internal/domain/sorting"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generic is the gorm-backed repository shared by every entity type.
// Lookups return (nil, nil) when no row matches; callers decide whether
// that is an error. The sortColumns map translates DTO-level sort
// properties into column names, anything outside the map never reaches
// the statement.
type Generic[T any, PT interface {
	entity.Record
	*T
}] struct {
	db          *gorm.DB
	sortColumns map[string]string
}

func NewGeneric[T any, PT interface {
	entity.Record
	*T
}](db *gorm.DB, sortColumns map[string]string) *Generic[T, PT] {
	return &Generic[T, PT]{db: db, sortColumns: sortColumns}
}

func (r *Generic[T, PT]) DB() *gorm.DB {
	return r.db
}

func (r *Generic[T, PT]) FindByID(id uuid.UUID) (PT, error) {
	var e T
	err := r.db.First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByIDAndOwner resolves an id scoped to its owner. A row that exists
// but belongs to someone else is reported exactly like a missing row.
func (r *Generic[T, PT]) FindByIDAndOwner(id, owner uuid.UUID) (PT, error) {
	var e T
	err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Generic[T, PT]) FindAll(sort []sorting.Directive) ([]PT, error) {
	var items []T
	err := r.sorted(sort).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return asRefs[T, PT](items), nil
}

func (r *Generic[T, PT]) FindPage(page, size int, sort []sorting.Directive) (*paging.Page[PT], error) {
	if size < 1 {
		size = paging.DefaultSize
	}
	if page < 0 {
		page = 0
	}

	var total int64
	if err := r.db.Model(new(T)).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	err := r.sorted(sort).Offset(page * size).Limit(size).Find(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &paging.Page[PT]{
		Content:       asRefs[T, PT](items),
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        page,
		Size:          size,
	}, nil
}

func (r *Generic[T, PT]) Save(e PT) error {
	return r.db.Save(e).Error
}

func (r *Generic[T, PT]) Delete(e PT) error {
	return r.db.Delete(e).Error
}

func (r *Generic[T, PT]) sorted(sort []sorting.Directive) *gorm.DB {
	tx := r.db
	if clause := sorting.OrderClause(sort, r.sortColumns); clause != "" {
		tx = tx.Order(clause)
	}
	return tx
}

func asRefs[T any, PT *T](items []T) []PT {
	refs := make([]PT, len(items))
	for i := range items {
		refs[i] = &items[i]
	}
	return refs
}
