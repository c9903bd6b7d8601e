package log_in

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth/models"
)

type AuthService interface {
	LogIn(ctx context.Context, req *models.LogInRequest) (*models.UserResponse, error)
}

type SessionWriter interface {
	Login(username domain.Identity) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
