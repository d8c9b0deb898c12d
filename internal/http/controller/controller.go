package controller

import (
	"errors"
	"net/http"
	"strings"

	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
	"crudkit/internal/domain/sorting"
	"crudkit/internal/i18n"
	"crudkit/internal/service"
	"crudkit/internal/utils/apierror"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// Outcome is the transport-agnostic result of a controller operation:
// a status code, an optional body and an optional resource location.
// The HTTP adapter writes it out verbatim.
type Outcome struct {
	Status   int
	Body     any
	Location string
}

// MessageSource renders localized messages for outcome bodies.
type MessageSource interface {
	Lookup(locale, key string, args ...any) string
}

// Generic maps the shared CRUD service semantics onto request/response
// outcomes. Expected domain failures become outcomes; storage failures
// come back as errors and stay untouched for the transport layer.
type Generic[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}] struct {
	svc      *service.Generic[T, PT, D, PD]
	msgs     MessageSource
	basePath string
}

func NewGeneric[T any, PT interface {
	entity.Record
	*T
}, D any, PD interface {
	contract.Projection
	*D
}](svc *service.Generic[T, PT, D, PD], msgs MessageSource, basePath string) *Generic[T, PT, D, PD] {
	return &Generic[T, PT, D, PD]{
		svc:      svc,
		msgs:     msgs,
		basePath: basePath,
	}
}

func (g *Generic[T, PT, D, PD]) BasePath() string {
	return g.basePath
}

// GetByID resolves a single resource. A malformed identifier is
// indistinguishable from a missing one.
func (g *Generic[T, PT, D, PD]) GetByID(rawID string) (*Outcome, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Debugf("invalid id: %s", rawID)
		return notFound(), nil
	}

	e, err := g.svc.FindByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return notFound(), nil
	}

	return ok(g.svc.ToDTO(e)), nil
}

// ListAll returns every resource, ordered by the parsed sort query or
// the store's natural order when the query yields nothing.
func (g *Generic[T, PT, D, PD]) ListAll(sortQuery string) (*Outcome, error) {
	entities, err := g.svc.FindAll(sorting.Parse(sortQuery))
	if err != nil {
		return nil, err
	}
	return ok(g.svc.ToDTOList(entities)), nil
}

// ListPaginated returns one page's content. Requesting a page beyond
// the available ones is a not-found outcome carrying a localized
// message with the requested and total page counts.
func (g *Generic[T, PT, D, PD]) ListPaginated(sortQuery string, page, size int, locale string) (*Outcome, error) {
	result, err := g.svc.FindPage(page, size, sorting.Parse(sortQuery))
	if err != nil {
		return nil, err
	}

	if result == nil {
		return g.pageNotFound(page, 0, locale), nil
	}
	if page > result.TotalPages {
		return g.pageNotFound(page, result.TotalPages, locale), nil
	}

	return ok(g.svc.ToDTOList(result.Content)), nil
}

// Add creates a resource. A natural-key conflict yields an empty 409
// outcome without any write having happened.
func (g *Generic[T, PT, D, PD]) Add(dto PD) (*Outcome, error) {
	e, err := g.svc.ToEntity(dto)
	if err != nil {
		return reject(err)
	}

	added, err := g.svc.Add(e)
	if err != nil {
		return nil, err
	}
	if !added {
		return &Outcome{Status: http.StatusConflict}, nil
	}

	created := g.svc.ToDTO(e)
	return &Outcome{
		Status:   http.StatusCreated,
		Body:     created,
		Location: g.basePath + "/" + created.Meta().ID,
	}, nil
}

// Update replaces the mutable fields of the identified resource. The
// path id and the body id must match, string-compared, before storage
// is ever touched.
func (g *Generic[T, PT, D, PD]) Update(rawID string, dto PD) (*Outcome, error) {
	if dto == nil || dto.Meta().ID == "" || rawID != dto.Meta().ID {
		return &Outcome{Status: http.StatusBadRequest}, nil
	}

	e, err := g.svc.ToEntity(dto)
	if err != nil {
		return reject(err)
	}

	updated, err := g.svc.Update(e)
	if err != nil {
		if isNotFound(err) {
			log.Debugf("update(id=%s): %v", rawID, err)
			return notFound(), nil
		}
		return nil, err
	}

	return ok(g.svc.ToDTO(updated)), nil
}

// Delete removes one resource. Malformed and unknown identifiers both
// yield not-found; success is an empty no-content outcome.
func (g *Generic[T, PT, D, PD]) Delete(rawID string) (*Outcome, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Debugf("invalid id: %s", rawID)
		return notFound(), nil
	}

	deleted, err := g.deleteByID(id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return notFound(), nil
	}
	return &Outcome{Status: http.StatusNoContent}, nil
}

// DeleteAll removes a comma-separated batch of resources. Malformed
// ids are skipped, valid ones are attempted in order, and the outcome
// is no-content only when every attempt succeeded. Deletes that went
// through are not undone by a later failure.
func (g *Generic[T, PT, D, PD]) DeleteAll(rawIDs string) (*Outcome, error) {
	var ids []uuid.UUID
	for _, raw := range strings.Split(rawIDs, ",") {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Debugf("invalid id: %s", raw)
			continue
		}
		ids = append(ids, id)
	}

	deleted := true
	for _, id := range ids {
		one, err := g.deleteByID(id)
		if err != nil {
			return nil, err
		}
		deleted = deleted && one
	}

	if !deleted {
		return &Outcome{Status: http.StatusConflict}, nil
	}
	return &Outcome{Status: http.StatusNoContent}, nil
}

func (g *Generic[T, PT, D, PD]) deleteByID(id uuid.UUID) (bool, error) {
	err := g.svc.DeleteByID(id)
	if err != nil {
		if isNotFound(err) {
			log.Debugf("delete(id=%s): %v", id, err)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (g *Generic[T, PT, D, PD]) pageNotFound(page, totalPages int, locale string) *Outcome {
	msg := g.msgs.Lookup(locale, i18n.KeyPageNotFound, page, totalPages)
	return &Outcome{
		Status: http.StatusNotFound,
		Body:   apierror.NewSimple(http.StatusNotFound, msg),
	}
}

func isNotFound(err error) bool {
	var nf *service.NotFoundError
	return errors.As(err, &nf)
}

func ok(body any) *Outcome {
	return &Outcome{Status: http.StatusOK, Body: body}
}

func notFound() *Outcome {
	return &Outcome{Status: http.StatusNotFound}
}

// reject maps mapper failures onto outcomes: a bad or dangling
// reference in the payload is the client's fault, anything else is a
// storage failure to propagate.
func reject(err error) (*Outcome, error) {
	var ref *service.InvalidReferenceError
	if errors.As(err, &ref) {
		return &Outcome{
			Status: http.StatusBadRequest,
			Body:   apierror.NewSimple(http.StatusBadRequest, err.Error()),
		}, nil
	}
	return nil, err
}
