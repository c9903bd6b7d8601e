package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SignUpRequest запрос на регистрацию
type SignUpRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// LogInRequest запрос на вход
type LogInRequest struct {
	Username string
	Password string
}

// UserResponse пользователь без хеша пароля
type UserResponse struct {
	ID        string
	Username  domain.Identity
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// FromDomainUser конвертирует пользователя
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}
