package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleVendedor  Role = "VENDEDOR"
	RoleDiretoria Role = "DIRETORIA"
)

func (r Role) IsValid() bool {
	return r == RoleVendedor || r == RoleDiretoria
}

type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                Role       `json:"role"`
	IsTemporaryPassword bool       `json:"isTemporaryPassword"`
	MustChangePassword  bool       `json:"mustChangePassword"`
	LastPasswordChange  *time.Time `json:"lastPasswordChange"`
	LeadCount           int        `json:"leadCount"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=VENDEDOR DIRETORIA"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=VENDEDOR DIRETORIA"`
	Password *string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ResetPasswordResponse devolve a senha temporária uma única vez
type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporaryPassword"`
}

// Actor identifica o usuário autenticado que executa uma operação
type Actor struct {
	ID   string
	Name string
	Role Role
}

func (a *Actor) IsDiretoria() bool {
	return a != nil && a.Role == RoleDiretoria
}

type Claims struct {
	UserID             string
	UserName           string
	UserEmail          string
	UserRole           Role
	MustChangePassword bool
	jwt.RegisteredClaims
}

func (c *Claims) Actor() *Actor {
	if c == nil {
		return nil
	}

	return &Actor{
		ID:   c.UserID,
		Name: c.UserName,
		Role: c.UserRole,
	}
}
