package log_out

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/infra/session"
)

const (
	msgNotLoggedIn    = "Not logged in."
	msgSessionFailure = "could not remove the session"
)

type Handler struct {
	sessions Sessions
	logger   Logger
}

func NewHandler(sessions Sessions, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// LogoutCommand user logout
func (h *Handler) LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE:  h.HandleLogout,
	}
}

// WhoAmICommand user whoami
func (h *Handler) WhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE:  h.HandleWhoAmI,
	}
}

func (h *Handler) HandleLogout(cmd *cobra.Command, _ []string) error {
	username, _ := h.sessions.Current()

	if err := h.sessions.Logout(); err != nil {
		h.logger.Error("user logout - Failed to remove session: %v", err)
		return commands.RespondError(commands.ExitInternal, msgSessionFailure)
	}

	if username == "" {
		fmt.Fprintln(cmd.OutOrStdout(), msgNotLoggedIn)
		return nil
	}

	h.logger.Info("user logout - Logged out: username=%s", username)
	fmt.Fprintf(cmd.OutOrStdout(), "Goodbye, %s.\n", username)
	return nil
}

func (h *Handler) HandleWhoAmI(cmd *cobra.Command, _ []string) error {
	username, err := h.sessions.Current()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrInvalidSession) {
			fmt.Fprintln(cmd.OutOrStdout(), msgNotLoggedIn)
			return nil
		}
		h.logger.Error("user whoami - Failed to read session: %v", err)
		return commands.RespondInternalError()
	}

	fmt.Fprintln(cmd.OutOrStdout(), username)
	return nil
}
