package service

import (
	"testing"
	"time"

	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverStub struct {
	known map[uuid.UUID]*entity.User
}

func (r *resolverStub) FindByID(id uuid.UUID) (*entity.User, error) {
	return r.known[id], nil
}

func TestBridgeRoundTrip(t *testing.T) {
	bridge := NewUserBridge(nil)
	owner := uuid.New().String()
	dto := &contract.UserDTO{
		Base:     contract.Base{ID: uuid.New().String(), Owner: owner},
		Username: "alice",
		Email:    "alice@example.com",
		Password: "$2a$10$hash",
		Enabled:  true,
		Verified: true,
	}

	e, err := bridge.ToEntity(dto)
	require.NoError(t, err)
	back := bridge.ToDTO(e)

	assert.Equal(t, dto.ID, back.ID)
	assert.Equal(t, owner, back.Owner)
	assert.Equal(t, dto.Username, back.Username)
	assert.Equal(t, dto.Email, back.Email)
	assert.Equal(t, dto.Enabled, back.Enabled)
	assert.Equal(t, dto.Verified, back.Verified)
	// The password never travels back out.
	assert.Empty(t, back.Password)
}

func TestBridgeToEntityLeavesDTOUntouched(t *testing.T) {
	bridge := NewUserBridge(nil)
	dto := &contract.UserDTO{Username: "bob", Email: "bob@example.com"}
	snapshot := *dto

	_, err := bridge.ToEntity(dto)

	require.NoError(t, err)
	assert.Equal(t, snapshot, *dto)
}

func TestBridgeToEntityWithoutIdentity(t *testing.T) {
	bridge := NewUserBridge(nil)

	e, err := bridge.ToEntity(&contract.UserDTO{Username: "carol", Email: "carol@example.com"})

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, e.ID)
	assert.Nil(t, e.OwnerID)
	assert.True(t, e.CreatedAt.IsZero())
}

func TestBridgeToEntityRejectsMalformedID(t *testing.T) {
	bridge := NewUserBridge(nil)

	_, err := bridge.ToEntity(&contract.UserDTO{Base: contract.Base{ID: "not-a-uuid"}})

	var refErr *InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "id", refErr.Field)
}

func TestBridgeToEntityRejectsUnknownOwner(t *testing.T) {
	bridge := NewUserBridge(&resolverStub{known: map[uuid.UUID]*entity.User{}})

	_, err := bridge.ToEntity(&contract.UserDTO{Base: contract.Base{Owner: uuid.New().String()}})

	var refErr *InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "owner", refErr.Field)
}

func TestBridgeToEntityResolvesKnownOwner(t *testing.T) {
	owner := &entity.User{Base: entity.Base{ID: uuid.New()}}
	bridge := NewUserBridge(&resolverStub{known: map[uuid.UUID]*entity.User{owner.ID: owner}})

	e, err := bridge.ToEntity(&contract.UserDTO{Base: contract.Base{Owner: owner.ID.String()}})

	require.NoError(t, err)
	require.NotNil(t, e.OwnerID)
	assert.Equal(t, owner.ID, *e.OwnerID)
}

func TestBridgeToDTOOmitsZeroTimestamps(t *testing.T) {
	bridge := NewUserBridge(nil)

	dto := bridge.ToDTO(&entity.User{Username: "dave"})

	assert.Nil(t, dto.CreatedAt)
	assert.Nil(t, dto.ModifiedAt)
	assert.Empty(t, dto.ID)
}

func TestBridgeToDTOCarriesTimestamps(t *testing.T) {
	bridge := NewUserBridge(nil)
	now := time.Now().UTC()

	dto := bridge.ToDTO(&entity.User{Base: entity.Base{ID: uuid.New(), CreatedAt: now, ModifiedAt: now}})

	require.NotNil(t, dto.CreatedAt)
	assert.Equal(t, now, *dto.CreatedAt)
	require.NotNil(t, dto.ModifiedAt)
	assert.Equal(t, now, *dto.ModifiedAt)
}

func TestBridgeToDTOList(t *testing.T) {
	bridge := NewUserBridge(nil)
	users := []*entity.User{
		{Username: "a"},
		{Username: "b"},
	}

	dtos := bridge.ToDTOList(users)

	require.Len(t, dtos, 2)
	assert.Equal(t, "a", dtos[0].Username)
	assert.Equal(t, "b", dtos[1].Username)
}
