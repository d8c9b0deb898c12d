package entity

const (
	MaxLengthUsername = 255
	MaxLengthEmail    = 255
	MaxLengthPassword = 512
)

// User is the general account record of the platform.
// Password always holds the hashed representation, never clear text.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null;size:255"`
	Email    string `gorm:"uniqueIndex;not null;size:255"`
	Password string `gorm:"size:512"`
	Enabled  bool   `gorm:"not null;default:true"`
	Verified bool   `gorm:"not null;default:false"`
}

// SetEmail changes the address and drops the verified flag whenever the
// address actually changes. A verified value set in the same payload does
// not survive an address change.
func (u *User) SetEmail(email string) {
	if u.Email == email {
		return
	}
	u.Email = email
	u.Verified = false
}

// ApplyUpdate merges the mutable fields of 'in' onto the receiver.
// Enabled and Verified are not update-mutable; they change only through
// their dedicated operations. The password is only replaced when the
// incoming record carries one.
func (u *User) ApplyUpdate(in *User) {
	u.Base.ApplyUpdate(&in.Base)

	u.Username = in.Username
	u.SetEmail(in.Email)
	if in.Password != "" {
		u.Password = in.Password
	}
}
