package sign_up

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth/models"
)

const (
	msgInvalidInput   = "username, first name and last name cannot be empty"
	msgWeakPassword   = "password must be 8-32 characters long and contain at least one letter and one digit"
	msgUsernameTaken  = "username already exists"
	msgPersistence    = "users storage is unavailable; the account may not have been created"
	msgRetryExhausted = "too many concurrent sign-ups, please try again"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Command user signup --username --first-name --last-name [--password]
func (h *Handler) Command() *cobra.Command {
	var req models.SignUpRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, req)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, req models.SignUpRequest) error {
	if req.Password == "" {
		prompter := commands.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		password, err := prompter.Ask("Password: ")
		if err != nil {
			return commands.RespondInvalidInput(msgWeakPassword)
		}
		req.Password = password
	}

	user, err := h.service.SignUp(cmd.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("user signup - Invalid input: %v", err)
			return commands.RespondInvalidInput(msgInvalidInput)

		case errors.Is(err, auth.ErrWeakPassword):
			h.logger.Warn("user signup - Weak password: username=%s", req.Username)
			return commands.RespondInvalidInput(msgWeakPassword)

		case errors.Is(err, auth.ErrUsernameTaken):
			h.logger.Warn("user signup - Username taken: username=%s", req.Username)
			return commands.RespondConflict(msgUsernameTaken)

		case errors.Is(err, auth.ErrRetryExhausted):
			h.logger.Error("user signup - Retries exhausted: %v", err)
			return commands.RespondUnavailable(msgRetryExhausted)

		case errors.Is(err, auth.ErrPersistence):
			h.logger.Error("user signup - Persistence failure: %v", err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("user signup - Failed to sign up: username=%s, error=%v", req.Username, err)
			return commands.RespondInternalError()
		}
	}

	h.logger.Info("user signup - Account created: username=%s, id=%s", user.Username, user.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Account %s created. Run `user login` to sign in.\n", user.Username)
	return nil
}
