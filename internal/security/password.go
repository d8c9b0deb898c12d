package security

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and checks salted bcrypt digests. The zero
// cost falls back to the bcrypt default.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(clear string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(clear), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *PasswordHasher) Matches(digest, clear string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(clear)) == nil
}
