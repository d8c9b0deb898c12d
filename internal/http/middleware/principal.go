package middleware

import (
	"net/http"

	"crudkit/internal/domain/entity"
	"crudkit/internal/utils/apierror"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderActingUser names the header an upstream gateway uses to hand
// over the authenticated caller. Authentication itself happens there;
// this middleware only resolves the id into a user record.
const HeaderActingUser = "X-Acting-User"

const principalKey = "principal"

type UserResolver interface {
	FindByID(id uuid.UUID) (*entity.User, error)
}

type PrincipalConfig struct {
	Users UserResolver
}

// NewPrincipal resolves the acting user when the header is present.
// Requests without the header pass through anonymously; a header that
// does not resolve is rejected.
func NewPrincipal(cfg *PrincipalConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderActingUser)
			if raw == "" {
				return next(c)
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized,
					apierror.NewSimple(http.StatusUnauthorized, "Unknown acting user"))
			}

			user, err := cfg.Users.FindByID(id)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil || !user.Enabled {
				return c.JSON(http.StatusUnauthorized,
					apierror.NewSimple(http.StatusUnauthorized, "Unknown acting user"))
			}

			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// Principal returns the acting user resolved for this request, or nil
// for anonymous requests.
func Principal(c echo.Context) *entity.User {
	user, _ := c.Get(principalKey).(*entity.User)
	return user
}
