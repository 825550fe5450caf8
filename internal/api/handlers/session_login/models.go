package session_login

import "github.com/m04kA/SMC-MovingService/internal/service/sessions/models"

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse HTTP response model. Сами токены уходят только в cookie.
type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(tokens *models.Tokens) *LoginResponse {
	return &LoginResponse{
		Message:  msgLoggedIn,
		Username: tokens.Username,
		Role:     tokens.Role,
	}
}
