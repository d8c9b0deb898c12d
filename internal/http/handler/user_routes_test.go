package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
	"crudkit/internal/http/controller"
	"crudkit/internal/http/middleware"
	"crudkit/internal/security"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ctrlSpy records what reaches the controller and answers with a fixed
// outcome.
type ctrlSpy struct {
	outcome *controller.Outcome

	gotSort  string
	gotPage  int
	gotSize  int
	gotDTO   *contract.UserDTO
	gotRawID string
	gotIDs   string
	gotOwner *uuid.UUID
	calls    int
}

func (s *ctrlSpy) answer() (*controller.Outcome, error) {
	s.calls++
	if s.outcome != nil {
		return s.outcome, nil
	}
	return &controller.Outcome{Status: http.StatusOK}, nil
}

func (s *ctrlSpy) GetByID(rawID string) (*controller.Outcome, error) {
	s.gotRawID = rawID
	return s.answer()
}

func (s *ctrlSpy) ListAll(sortQuery string) (*controller.Outcome, error) {
	s.gotSort = sortQuery
	return s.answer()
}

func (s *ctrlSpy) ListPaginated(sortQuery string, page, size int, locale string) (*controller.Outcome, error) {
	s.gotSort = sortQuery
	s.gotPage = page
	s.gotSize = size
	return s.answer()
}

func (s *ctrlSpy) FindByUsernameOrEmail(username, email string) (*controller.Outcome, error) {
	return s.answer()
}

func (s *ctrlSpy) Add(dto *contract.UserDTO) (*controller.Outcome, error) {
	s.gotDTO = dto
	return s.answer()
}

func (s *ctrlSpy) Update(rawID string, dto *contract.UserDTO) (*controller.Outcome, error) {
	s.gotRawID = rawID
	s.gotDTO = dto
	return s.answer()
}

func (s *ctrlSpy) SetEnabled(rawID string, enabled bool, owner *uuid.UUID) (*controller.Outcome, error) {
	s.gotRawID = rawID
	s.gotOwner = owner
	return s.answer()
}

func (s *ctrlSpy) SetVerified(rawID string, verified bool, owner *uuid.UUID) (*controller.Outcome, error) {
	s.gotRawID = rawID
	s.gotOwner = owner
	return s.answer()
}

func (s *ctrlSpy) SetPassword(rawID, clear string, owner *uuid.UUID) (*controller.Outcome, error) {
	s.gotRawID = rawID
	s.gotOwner = owner
	return s.answer()
}

func (s *ctrlSpy) Delete(rawID string) (*controller.Outcome, error) {
	s.gotRawID = rawID
	return s.answer()
}

func (s *ctrlSpy) DeleteAll(rawIDs string) (*controller.Outcome, error) {
	s.gotIDs = rawIDs
	return s.answer()
}

func newTestRoute(spy *ctrlSpy) *DefaultUserRoute {
	return NewUserDefault(spy, validator.New(), security.NewPasswordHasher(bcrypt.MinCost))
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestGetUsersWithoutPageListsAll(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodGet, "/api/users", "")

	require.NoError(t, route.GetUsers(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	// No sort parameter falls back to the default ordering.
	assert.Equal(t, "createdAt,DESC;modifiedAt,DESC", spy.gotSort)
}

func TestGetUsersExplicitEmptySortIsPassedThrough(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, _ := newContext(http.MethodGet, "/api/users?sort=", "")

	require.NoError(t, route.GetUsers(c))

	assert.Empty(t, spy.gotSort)
}

func TestGetUsersPaginated(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodGet, "/api/users?page=2&size=5", "")

	require.NoError(t, route.GetUsers(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, spy.gotPage)
	assert.Equal(t, 5, spy.gotSize)
}

func TestGetUsersRejectsBadPage(t *testing.T) {
	for _, target := range []string{
		"/api/users?page=abc",
		"/api/users?page=-1",
		"/api/users?page=0&size=0",
		"/api/users?page=0&size=nope",
	} {
		spy := &ctrlSpy{}
		route := newTestRoute(spy)
		c, rec := newContext(http.MethodGet, target, "")

		require.NoError(t, route.GetUsers(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Zero(t, spy.calls, target)
	}
}

func TestFindUserRequiresAParameter(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodGet, "/api/users/find", "")

	require.NoError(t, route.FindUser(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)
}

func TestCreateUserRejectsMalformedBody(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPost, "/api/users", "{not json")

	require.NoError(t, route.CreateUser(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)
}

func TestCreateUserRejectsInvalidPayload(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPost, "/api/users", `{"username":"alice"}`)

	require.NoError(t, route.CreateUser(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "errors")
}

func TestCreateUserTrimsAndHashesPassword(t *testing.T) {
	spy := &ctrlSpy{outcome: &controller.Outcome{Status: http.StatusCreated}}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPost, "/api/users",
		`{"username":"  alice  ","email":"alice@example.com","password":"s3cret-enough"}`)

	require.NoError(t, route.CreateUser(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, spy.gotDTO)
	assert.Equal(t, "alice", spy.gotDTO.Username)
	assert.NotEqual(t, "s3cret-enough", spy.gotDTO.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(spy.gotDTO.Password), []byte("s3cret-enough")))
}

func TestUpdateUserPassesPathID(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	id := uuid.New().String()
	c, _ := newContext(http.MethodPut, "/api/users/"+id,
		`{"id":"`+id+`","username":"alice","email":"alice@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, route.UpdateUser(c))

	assert.Equal(t, id, spy.gotRawID)
	require.NotNil(t, spy.gotDTO)
	assert.Equal(t, id, spy.gotDTO.ID)
}

func TestSetEnabledRequiresFlag(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPut, "/api/users/x/enabled", `{}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	require.NoError(t, route.SetEnabled(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)
}

func TestSetEnabledAcceptsExplicitFalse(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	id := uuid.New().String()
	c, rec := newContext(http.MethodPut, "/api/users/"+id+"/enabled", `{"enabled":false}`)
	c.SetParamNames("id")
	c.SetParamValues(id)

	require.NoError(t, route.SetEnabled(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, spy.gotRawID)
}

func TestSetPasswordValidatesLength(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPut, "/api/users/x/password", `{"password":"short"}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	require.NoError(t, route.SetPassword(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)
}

func TestDeleteUsersRequiresIDs(t *testing.T) {
	spy := &ctrlSpy{}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodDelete, "/api/users", "")

	require.NoError(t, route.DeleteUsers(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, spy.calls)
}

func TestDeleteUsersForwardsList(t *testing.T) {
	spy := &ctrlSpy{outcome: &controller.Outcome{Status: http.StatusNoContent}}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodDelete, "/api/users?ids=a,b,c", "")

	require.NoError(t, route.DeleteUsers(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a,b,c", spy.gotIDs)
}

type userResolverStub struct {
	user *entity.User
}

func (r *userResolverStub) FindByID(id uuid.UUID) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

func setFlagAs(t *testing.T, spy *ctrlSpy, acting *entity.User, targetID string) {
	t.Helper()

	route := newTestRoute(spy)
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+targetID+"/enabled",
		strings.NewReader(`{"enabled":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.HeaderActingUser, acting.ID.String())
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(targetID)

	wrapped := middleware.NewPrincipal(&middleware.PrincipalConfig{
		Users: &userResolverStub{user: acting},
	})(route.SetEnabled)
	require.NoError(t, wrapped(c))
}

func TestSetEnabledScopesToActingUser(t *testing.T) {
	spy := &ctrlSpy{}
	acting := &entity.User{Base: entity.Base{ID: uuid.New()}, Enabled: true}

	setFlagAs(t, spy, acting, uuid.New().String())

	require.NotNil(t, spy.gotOwner)
	assert.Equal(t, acting.ID, *spy.gotOwner)
}

func TestSetEnabledOnOwnRecordIsUnscoped(t *testing.T) {
	spy := &ctrlSpy{}
	acting := &entity.User{Base: entity.Base{ID: uuid.New()}, Enabled: true}

	setFlagAs(t, spy, acting, acting.ID.String())

	assert.Nil(t, spy.gotOwner)
}

func TestWriteSetsLocationHeader(t *testing.T) {
	spy := &ctrlSpy{outcome: &controller.Outcome{
		Status:   http.StatusCreated,
		Body:     &contract.UserDTO{Username: "alice"},
		Location: "/api/users/some-id",
	}}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodPost, "/api/users",
		`{"username":"alice","email":"alice@example.com"}`)

	require.NoError(t, route.CreateUser(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/some-id", rec.Header().Get(echo.HeaderLocation))
}

func TestWriteEmptyBodyIsNoContent(t *testing.T) {
	spy := &ctrlSpy{outcome: &controller.Outcome{Status: http.StatusConflict}}
	route := newTestRoute(spy)
	c, rec := newContext(http.MethodDelete, "/api/users?ids=a", "")

	require.NoError(t, route.DeleteUsers(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Body.String())
}
