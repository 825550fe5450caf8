package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Типы токенов
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims полезная нагрузка JWT
type Claims struct {
	Username  string `json:"username"`
	UserID    string `json:"id,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Tokens пара токенов, выданная при входе
type Tokens struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	Username         string
	Role             string
}

// AccessToken новый access токен после обновления
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// RoleResponse роль текущего пользователя
type RoleResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
