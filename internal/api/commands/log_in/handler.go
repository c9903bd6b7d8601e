package log_in

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth/models"
)

const (
	msgInvalidCredentials = "invalid username or password"
	msgPersistence        = "users storage is unavailable"
	msgSessionFailure     = "could not save the session"
)

type Handler struct {
	service  AuthService
	sessions SessionWriter
	logger   Logger
}

func NewHandler(service AuthService, sessions SessionWriter, logger Logger) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// Command user login --username [--password]
func (h *Handler) Command() *cobra.Command {
	var req models.LogInRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, req models.LogInRequest) error {
	if req.Password == "" {
		prompter := commands.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		password, err := prompter.Ask("Password: ")
		if err != nil {
			return commands.RespondUnauthorized(msgInvalidCredentials)
		}
		req.Password = password
	}

	user, err := h.service.LogIn(cmd.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("user login - Rejected: username=%s", req.Username)
			return commands.RespondUnauthorized(msgInvalidCredentials)

		case errors.Is(err, auth.ErrPersistence):
			h.logger.Error("user login - Persistence failure: %v", err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("user login - Failed to log in: username=%s, error=%v", req.Username, err)
			return commands.RespondInternalError()
		}
	}

	if err := h.sessions.Login(user.Username); err != nil {
		h.logger.Error("user login - Failed to save session: username=%s, error=%v", user.Username, err)
		return commands.RespondError(commands.ExitInternal, msgSessionFailure)
	}

	h.logger.Info("user login - Logged in: username=%s", user.Username)
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s %s!\n", user.FirstName, user.LastName)
	return nil
}
