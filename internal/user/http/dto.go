package http

import (
	"time"

	"github.com/dangarahotel/frontdesk-backend/internal/permission"
	"github.com/dangarahotel/frontdesk-backend/internal/user"
)

type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	perms := u.EffectivePermissions()
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Permissions: out,
		CreatedAt:   u.CreatedAt,
	}
}

type LoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string       `json:"token"`
	User        UserResponse `json:"user"`
	LandingPath string       `json:"landing_path"`
}

type CreateUserBody struct {
	Username    string   `json:"username" binding:"required,min=3"`
	FullName    string   `json:"full_name"`
	Password    string   `json:"password" binding:"required,min=6"`
	Role        string   `json:"role" binding:"required,oneof=admin receptionist accountant"`
	Permissions []string `json:"permissions"`
}

type UpdateUserBody struct {
	Username    *string  `json:"username" binding:"omitempty,min=3"`
	FullName    *string  `json:"full_name"`
	Password    *string  `json:"password" binding:"omitempty,min=6"`
	Role        *string  `json:"role" binding:"omitempty,oneof=admin receptionist accountant"`
	Permissions []string `json:"permissions"`
}

type PageOptionResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

func NewPageOptionsResponse() []PageOptionResponse {
	out := make([]PageOptionResponse, len(permission.PageOptions))
	for i, p := range permission.PageOptions {
		out[i] = PageOptionResponse{Key: string(p.Key), Label: p.Label, Path: p.Path}
	}
	return out
}
