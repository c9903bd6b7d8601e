package middleware

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/session"
)

const msgLoginRequired = "you are not logged in, run `user login` first"

type contextKey string

const identityKey contextKey = "identity"

// SessionReader источник текущего пользователя
type SessionReader interface {
	Current() (domain.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithIdentity кладет пользователя в контекст
func WithIdentity(ctx context.Context, username domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, username)
}

// IdentityFromContext извлекает пользователя из контекста
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	username, ok := ctx.Value(identityKey).(domain.Identity)
	return username, ok && username != ""
}

// Auth требует активную сессию и передает пользователя обработчику через контекст
func Auth(sessions SessionReader, logger Logger) Middleware {
	return func(next RunE) RunE {
		return func(cmd *cobra.Command, args []string) error {
			username, err := sessions.Current()
			if err != nil {
				if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrInvalidSession) {
					logger.Warn("%s - no valid session: %v", cmd.CommandPath(), err)
					return commands.RespondUnauthorized(msgLoginRequired)
				}
				logger.Error("%s - failed to read session: %v", cmd.CommandPath(), err)
				return commands.RespondInternalError()
			}

			cmd.SetContext(WithIdentity(cmd.Context(), username))
			return next(cmd, args)
		}
	}
}

// OptionalAuth как Auth, но без сессии команда выполняется анонимно
func OptionalAuth(sessions SessionReader, logger Logger) Middleware {
	return func(next RunE) RunE {
		return func(cmd *cobra.Command, args []string) error {
			username, err := sessions.Current()
			switch {
			case err == nil:
				cmd.SetContext(WithIdentity(cmd.Context(), username))
			case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrInvalidSession):
			default:
				logger.Warn("%s - failed to read session: %v", cmd.CommandPath(), err)
			}
			return next(cmd, args)
		}
	}
}

// RequireIdentity возвращает пользователя из контекста или ошибку Unauthorized
func RequireIdentity(ctx context.Context) (domain.Identity, error) {
	username, ok := IdentityFromContext(ctx)
	if !ok {
		return "", commands.RespondUnauthorized(msgLoginRequired)
	}
	return username, nil
}
