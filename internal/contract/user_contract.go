package contract

// UserDTO is the wire shape of a user. Password is only ever populated
// inbound; outbound copies always carry an empty password.
type UserDTO struct {
	Base
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"omitempty,max=512"`
	Enabled  bool   `json:"enabled"`
	Verified bool   `json:"verified"`
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type SetVerifiedRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=64"`
}
