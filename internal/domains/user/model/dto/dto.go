package dto

import (
	"nest/internal/domains/user/model"
	gDto "nest/shared/dto"
)

// InsertUser picks the username and password of a user. Any other key in the
// payload is dropped by the decoder.
type InsertUser struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *InsertUser) ToModel(hashedPassword string) model.User {
	return model.User{
		Username: r.Username,
		Password: hashedPassword,
	}
}

type UpdatePassword struct {
	Password string `db:"password"`
}

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Username = m.Username
}

func ByUsername(username string) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldUsername, Value: username, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

func ByID(id int) gDto.FilterGroup {
	return gDto.And(gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName})
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}
