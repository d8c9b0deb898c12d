package controller

import (
	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
	"crudkit/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const UserBasePath = "/api/users"

// UserController extends the generic CRUD outcomes with the
// user-specific lookups and flag operations. When an owner is given,
// the owner-scoped service variants run, so callers only ever reach
// records they own.
type UserController struct {
	*Generic[entity.User, *entity.User, contract.UserDTO, *contract.UserDTO]
	svc *service.UserService
}

func NewUserController(svc *service.UserService, msgs MessageSource) *UserController {
	return &UserController{
		Generic: NewGeneric(svc.Generic, msgs, UserBasePath),
		svc:     svc,
	}
}

// FindByUsernameOrEmail resolves a user by either natural key,
// case-insensitive.
func (u *UserController) FindByUsernameOrEmail(username, email string) (*Outcome, error) {
	user, err := u.svc.FindByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return notFound(), nil
	}
	return ok(u.svc.ToDTO(user)), nil
}

func (u *UserController) SetEnabled(rawID string, enabled bool, owner *uuid.UUID) (*Outcome, error) {
	return u.flagOutcome(rawID, owner,
		func(id uuid.UUID) (*entity.User, error) { return u.svc.SetEnabled(id, enabled) },
		func(id, by uuid.UUID) (*entity.User, error) { return u.svc.SetEnabledByOwner(id, enabled, by) })
}

func (u *UserController) SetVerified(rawID string, verified bool, owner *uuid.UUID) (*Outcome, error) {
	return u.flagOutcome(rawID, owner,
		func(id uuid.UUID) (*entity.User, error) { return u.svc.SetVerified(id, verified) },
		func(id, by uuid.UUID) (*entity.User, error) { return u.svc.SetVerifiedByOwner(id, verified, by) })
}

func (u *UserController) SetPassword(rawID, clear string, owner *uuid.UUID) (*Outcome, error) {
	return u.flagOutcome(rawID, owner,
		func(id uuid.UUID) (*entity.User, error) { return u.svc.SetPassword(id, clear) },
		func(id, by uuid.UUID) (*entity.User, error) { return u.svc.SetPasswordByOwner(id, clear, by) })
}

func (u *UserController) flagOutcome(
	rawID string,
	owner *uuid.UUID,
	unscoped func(uuid.UUID) (*entity.User, error),
	scoped func(id, owner uuid.UUID) (*entity.User, error),
) (*Outcome, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		log.Debugf("invalid id: %s", rawID)
		return notFound(), nil
	}

	var user *entity.User
	if owner != nil {
		user, err = scoped(id, *owner)
	} else {
		user, err = unscoped(id)
	}

	if err != nil {
		if isNotFound(err) {
			return notFound(), nil
		}
		return nil, err
	}
	return ok(u.svc.ToDTO(user)), nil
}
