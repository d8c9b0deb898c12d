package handler

import (
	"net/http"
	"strconv"
	"strings"

	"crudkit/internal/contract"
	"crudkit/internal/domain/paging"
	"crudkit/internal/domain/sorting"
	"crudkit/internal/http/controller"
	"crudkit/internal/http/middleware"
	"crudkit/internal/security"
	"crudkit/internal/utils"
	"crudkit/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UserController interface {
	GetByID(rawID string) (*controller.Outcome, error)
	ListAll(sortQuery string) (*controller.Outcome, error)
	ListPaginated(sortQuery string, page, size int, locale string) (*controller.Outcome, error)
	FindByUsernameOrEmail(username, email string) (*controller.Outcome, error)
	Add(dto *contract.UserDTO) (*controller.Outcome, error)
	Update(rawID string, dto *contract.UserDTO) (*controller.Outcome, error)
	SetEnabled(rawID string, enabled bool, owner *uuid.UUID) (*controller.Outcome, error)
	SetVerified(rawID string, verified bool, owner *uuid.UUID) (*controller.Outcome, error)
	SetPassword(rawID, clear string, owner *uuid.UUID) (*controller.Outcome, error)
	Delete(rawID string) (*controller.Outcome, error)
	DeleteAll(rawIDs string) (*controller.Outcome, error)
}

type DefaultUserRoute struct {
	Controller UserController
	Validate   *validator.Validate
	Hasher     *security.PasswordHasher
}

func NewUserDefault(ctrl UserController, validate *validator.Validate, hasher *security.PasswordHasher) *DefaultUserRoute {
	return &DefaultUserRoute{
		Controller: ctrl,
		Validate:   validate,
		Hasher:     hasher,
	}
}

func (u *DefaultUserRoute) GetUser(c echo.Context) error {
	out, err := u.Controller.GetByID(strings.TrimSpace(c.Param("id")))
	return u.write(c, out, err)
}

// GetUsers serves both the plain and the paginated listing; the
// presence of the page parameter selects pagination.
func (u *DefaultUserRoute) GetUsers(c echo.Context) error {
	sortQuery := sortOrDefault(c)

	if !c.QueryParams().Has("page") {
		out, err := u.Controller.ListAll(sortQuery)
		return u.write(c, out, err)
	}

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 0 {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("page", "int >= 0"))
	}

	size := paging.DefaultSize
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("size", "int > 0"))
		}
	}

	out, cerr := u.Controller.ListPaginated(sortQuery, page, size, locale(c))
	return u.write(c, out, cerr)
}

func (u *DefaultUserRoute) FindUser(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	email := strings.TrimSpace(c.QueryParam("email"))
	if username == "" && email == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("username or email"))
	}

	out, err := u.Controller.FindByUsernameOrEmail(username, email)
	return u.write(c, out, err)
}

func (u *DefaultUserRoute) CreateUser(c echo.Context) error {
	dto, err := u.bindDTO(c)
	if dto == nil {
		return err // rejection response already written
	}

	out, cerr := u.Controller.Add(dto)
	return u.write(c, out, cerr)
}

func (u *DefaultUserRoute) UpdateUser(c echo.Context) error {
	dto, err := u.bindDTO(c)
	if dto == nil {
		return err
	}

	out, cerr := u.Controller.Update(strings.TrimSpace(c.Param("id")), dto)
	return u.write(c, out, cerr)
}

func (u *DefaultUserRoute) SetEnabled(c echo.Context) error {
	var req contract.SetEnabledRequest
	if ok := u.bindRequest(c, &req); !ok {
		return nil
	}

	id := c.Param("id")
	out, err := u.Controller.SetEnabled(id, *req.Enabled, ownerRef(c, id))
	return u.write(c, out, err)
}

func (u *DefaultUserRoute) SetVerified(c echo.Context) error {
	var req contract.SetVerifiedRequest
	if ok := u.bindRequest(c, &req); !ok {
		return nil
	}

	id := c.Param("id")
	out, err := u.Controller.SetVerified(id, *req.Verified, ownerRef(c, id))
	return u.write(c, out, err)
}

func (u *DefaultUserRoute) SetPassword(c echo.Context) error {
	var req contract.SetPasswordRequest
	if ok := u.bindRequest(c, &req); !ok {
		return nil
	}

	id := c.Param("id")
	out, err := u.Controller.SetPassword(id, req.Password, ownerRef(c, id))
	return u.write(c, out, err)
}

func (u *DefaultUserRoute) DeleteUser(c echo.Context) error {
	out, err := u.Controller.Delete(strings.TrimSpace(c.Param("id")))
	return u.write(c, out, err)
}

func (u *DefaultUserRoute) DeleteUsers(c echo.Context) error {
	ids := strings.TrimSpace(c.QueryParam("ids"))
	if ids == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("ids"))
	}

	out, err := u.Controller.DeleteAll(ids)
	return u.write(c, out, err)
}

// bindDTO binds, sanitizes and validates a user payload, hashing the
// clear password before it travels any further. A nil DTO means the
// rejection response is already written.
func (u *DefaultUserRoute) bindDTO(c echo.Context) (*contract.UserDTO, error) {
	var dto contract.UserDTO
	if err := c.Bind(&dto); err != nil {
		return nil, c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	utils.Sanitize(&dto)
	if err := u.Validate.Struct(&dto); err != nil {
		return nil, u.rejectValidation(c, err)
	}

	if dto.Password != "" {
		hash, err := u.Hasher.Hash(dto.Password)
		if err != nil {
			log.Errorf("failed to hash password: %v", err)
			return nil, c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
		}
		dto.Password = hash
	}
	return &dto, nil
}

func (u *DefaultUserRoute) bindRequest(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
		return false
	}

	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		_ = u.rejectValidation(c, err)
		return false
	}
	return true
}

func (u *DefaultUserRoute) rejectValidation(c echo.Context, err error) error {
	apierr := apierror.FromValidationError(err)
	if apierr == nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}
	return c.JSON(apierr.Code(), apierr)
}

// write translates a controller outcome into the HTTP response.
// Unexpected errors surface as a logged 500, never retried.
func (u *DefaultUserRoute) write(c echo.Context, out *controller.Outcome, err error) error {
	if err != nil {
		log.Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
	}

	if out.Location != "" {
		c.Response().Header().Set(echo.HeaderLocation, out.Location)
	}
	if out.Body == nil {
		return c.NoContent(out.Status)
	}
	return c.JSON(out.Status, out.Body)
}

func sortOrDefault(c echo.Context) string {
	if c.QueryParams().Has("sort") {
		return c.QueryParam("sort")
	}
	return sorting.DefaultQuery
}

func locale(c echo.Context) string {
	return c.Request().Header.Get("Accept-Language")
}

// ownerRef yields the owner scope for a mutation: the acting user's id,
// except when they act on their own record, which is never owner-scoped.
func ownerRef(c echo.Context, rawID string) *uuid.UUID {
	principal := middleware.Principal(c)
	if principal == nil || principal.ID.String() == rawID {
		return nil
	}
	id := principal.ID
	return &id
}
