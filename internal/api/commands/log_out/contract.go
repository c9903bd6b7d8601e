package log_out

import "github.com/m04kA/SMC-ReservationService/internal/domain"

type Sessions interface {
	Current() (domain.Identity, error)
	Logout() error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
