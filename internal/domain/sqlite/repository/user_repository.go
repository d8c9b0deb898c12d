package repository

import (
	"errors"

	"crudkit/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSortColumns maps the sortable DTO properties of a user onto their
// columns.
var UserSortColumns = map[string]string{
	"createdAt":  "created_at",
	"modifiedAt": "modified_at",
	"username":   "username",
	"email":      "email",
	"enabled":    "enabled",
	"verified":   "verified",
}

type UserRepository struct {
	*Generic[entity.User, *entity.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		Generic: NewGeneric[entity.User, *entity.User](db, UserSortColumns),
		db:      db,
	}
}

// Exists probes the natural uniqueness keys of a user before an insert.
// Username and email comparisons are case-insensitive.
func (u *UserRepository) Exists(id uuid.UUID, username, email string) (bool, error) {
	var exists int
	err := u.db.
		Raw("SELECT EXISTS(SELECT 1 FROM users WHERE id = ? OR LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?))",
			id, username, email).
		Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (u *UserRepository) FindByUsername(username string) (*entity.User, error) {
	return u.firstWhere("LOWER(username) = LOWER(?)", username)
}

func (u *UserRepository) FindByEmail(email string) (*entity.User, error) {
	return u.firstWhere("LOWER(email) = LOWER(?)", email)
}

func (u *UserRepository) FindByUsernameOrEmail(username, email string) (*entity.User, error) {
	return u.firstWhere("LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)", username, email)
}

// SearchContaining lists users whose username or email contains the given
// fragments, case-insensitive. Empty fragments match nothing.
func (u *UserRepository) SearchContaining(username, email string) ([]*entity.User, error) {
	var users []*entity.User
	err := u.db.
		Where("(? != '' AND LOWER(username) LIKE '%' || LOWER(?) || '%') OR (? != '' AND LOWER(email) LIKE '%' || LOWER(?) || '%')",
			username, username, email, email).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *UserRepository) SetEnabled(id uuid.UUID, enabled bool) (*entity.User, error) {
	user, err := u.FindByID(id)
	return u.setFlag(user, err, func(target *entity.User) { target.Enabled = enabled })
}

func (u *UserRepository) SetEnabledByOwner(id uuid.UUID, enabled bool, owner uuid.UUID) (*entity.User, error) {
	user, err := u.FindByIDAndOwner(id, owner)
	return u.setFlag(user, err, func(target *entity.User) { target.Enabled = enabled })
}

func (u *UserRepository) SetVerified(id uuid.UUID, verified bool) (*entity.User, error) {
	user, err := u.FindByID(id)
	return u.setFlag(user, err, func(target *entity.User) { target.Verified = verified })
}

func (u *UserRepository) SetVerifiedByOwner(id uuid.UUID, verified bool, owner uuid.UUID) (*entity.User, error) {
	user, err := u.FindByIDAndOwner(id, owner)
	return u.setFlag(user, err, func(target *entity.User) { target.Verified = verified })
}

// Delete removes a user after clearing every audit and ownership
// reference pointing at them, all inside one transaction. Dangling
// references must never survive the delete.
func (u *UserRepository) Delete(user *entity.User) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		for _, column := range []string{"created_by_id", "modified_by_id", "owner_id"} {
			err := tx.Model(&entity.User{}).
				Where(column+" = ?", user.ID).
				Update(column, nil).Error
			if err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
}

func (u *UserRepository) firstWhere(cond string, args ...any) (*entity.User, error) {
	var user entity.User
	err := u.db.Where(cond, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) setFlag(user *entity.User, err error, apply func(*entity.User)) (*entity.User, error) {
	if err != nil || user == nil {
		return nil, err
	}

	apply(user)
	if err := u.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}
