package service

import (
	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
	"crudkit/internal/security"

	"github.com/google/uuid"
)

// UserRepository is the storage contract the user service needs on top
// of the generic one.
type UserRepository interface {
	Repository[entity.User, *entity.User]
	Exists(id uuid.UUID, username, email string) (bool, error)
	FindByUsername(username string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindByUsernameOrEmail(username, email string) (*entity.User, error)
	SearchContaining(username, email string) ([]*entity.User, error)
	SetEnabled(id uuid.UUID, enabled bool) (*entity.User, error)
	SetEnabledByOwner(id uuid.UUID, enabled bool, owner uuid.UUID) (*entity.User, error)
	SetVerified(id uuid.UUID, verified bool) (*entity.User, error)
	SetVerifiedByOwner(id uuid.UUID, verified bool, owner uuid.UUID) (*entity.User, error)
}

type UserService struct {
	*Generic[entity.User, *entity.User, contract.UserDTO, *contract.UserDTO]
	users  UserRepository
	hasher *security.PasswordHasher
}

func NewUserService(users UserRepository, hasher *security.PasswordHasher) *UserService {
	bridge := NewUserBridge(resolverFunc(users.FindByID))
	generic := NewGeneric[entity.User, *entity.User, contract.UserDTO, *contract.UserDTO](
		"user",
		users,
		bridge,
		func(u *entity.User) (bool, error) {
			return users.Exists(u.ID, u.Username, u.Email)
		},
		func(current, incoming *entity.User) {
			current.ApplyUpdate(incoming)
		},
	)

	return &UserService{
		Generic: generic,
		users:   users,
		hasher:  hasher,
	}
}

func (s *UserService) FindByUsername(username string) (*entity.User, error) {
	return s.users.FindByUsername(username)
}

func (s *UserService) FindByEmail(email string) (*entity.User, error) {
	return s.users.FindByEmail(email)
}

func (s *UserService) FindByUsernameOrEmail(username, email string) (*entity.User, error) {
	return s.users.FindByUsernameOrEmail(username, email)
}

func (s *UserService) SearchContaining(username, email string) ([]*entity.User, error) {
	return s.users.SearchContaining(username, email)
}

// HashPassword produces the stored representation of a clear password.
// Transport adapters call this before a password ever enters a DTO
// mapping or merge.
func (s *UserService) HashPassword(clear string) (string, error) {
	return s.hasher.Hash(clear)
}

func (s *UserService) SetEnabled(id uuid.UUID, enabled bool) (*entity.User, error) {
	user, err := s.users.SetEnabled(id, enabled)
	return s.requireFound(user, err, id)
}

func (s *UserService) SetEnabledByOwner(id uuid.UUID, enabled bool, owner uuid.UUID) (*entity.User, error) {
	user, err := s.users.SetEnabledByOwner(id, enabled, owner)
	return s.requireFound(user, err, id)
}

func (s *UserService) SetVerified(id uuid.UUID, verified bool) (*entity.User, error) {
	user, err := s.users.SetVerified(id, verified)
	return s.requireFound(user, err, id)
}

func (s *UserService) SetVerifiedByOwner(id uuid.UUID, verified bool, owner uuid.UUID) (*entity.User, error) {
	user, err := s.users.SetVerifiedByOwner(id, verified, owner)
	return s.requireFound(user, err, id)
}

func (s *UserService) SetPassword(id uuid.UUID, clear string) (*entity.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.storePassword(user, id, clear)
}

func (s *UserService) SetPasswordByOwner(id uuid.UUID, clear string, owner uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByIDAndOwner(id, owner)
	if err != nil {
		return nil, err
	}
	return s.storePassword(user, id, clear)
}

func (s *UserService) storePassword(user *entity.User, id uuid.UUID, clear string) (*entity.User, error) {
	if user == nil {
		return nil, s.NotFound(id)
	}

	hash, err := s.hasher.Hash(clear)
	if err != nil {
		return nil, err
	}

	user.Password = hash
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// requireFound converts the repository's nil-on-miss convention into
// the service-level not-found error.
func (s *UserService) requireFound(user *entity.User, err error, id uuid.UUID) (*entity.User, error) {
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, s.NotFound(id)
	}
	return user, nil
}

type resolverFunc func(id uuid.UUID) (*entity.User, error)

func (f resolverFunc) FindByID(id uuid.UUID) (*entity.User, error) {
	return f(id)
}
