package service

import (
	"crudkit/internal/contract"
	"crudkit/internal/domain/entity"
)

// UserBridge maps users to and from their wire shape.
type UserBridge = Bridge[entity.User, *entity.User, contract.UserDTO, *contract.UserDTO]

// NewUserBridge builds the user mapper. Pass a nil resolver to skip
// reference checks.
func NewUserBridge(users Resolver) *UserBridge {
	return NewBridge[entity.User, *entity.User, contract.UserDTO, *contract.UserDTO](
		users, copyUserToEntity, copyUserToDTO)
}

func copyUserToEntity(dto *contract.UserDTO, e *entity.User) {
	e.Username = dto.Username
	e.Email = dto.Email
	// Inbound passwords are hashed before the DTO reaches the bridge.
	e.Password = dto.Password
	e.Enabled = dto.Enabled
	e.Verified = dto.Verified
}

func copyUserToDTO(e *entity.User, dto *contract.UserDTO) {
	dto.Username = e.Username
	dto.Email = e.Email
	dto.Password = ""
	dto.Enabled = e.Enabled
	dto.Verified = e.Verified
}
