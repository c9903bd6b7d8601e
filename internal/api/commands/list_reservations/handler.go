package list_reservations

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidHorizon = "invalid horizon, expected past or future"
	msgPersistence    = "reservations storage is unavailable"
)

type Handler struct {
	service      ReservationService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Command list [--horizon future|past]
func (h *Handler) Command() *cobra.Command {
	var horizon string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your upcoming or past reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, horizon)
		},
	}

	cmd.Flags().StringVar(&horizon, "horizon", string(domain.HorizonFuture), "future or past")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, horizon string) error {
	username, err := middleware.RequireIdentity(cmd.Context())
	if err != nil {
		return err
	}

	req := &models.ListReservationsRequest{
		Username: username,
		Horizon:  domain.Horizon(horizon),
		Now:      h.timeProvider.Now(),
	}

	result, err := h.service.ListReservations(cmd.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("list - Invalid input: user=%s, horizon=%s", username, horizon)
			return commands.RespondInvalidInput(msgInvalidHorizon)

		case errors.Is(err, reservations.ErrPersistence):
			h.logger.Error("list - Persistence failure: user=%s, error=%v", username, err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("list - Failed to list reservations: user=%s, error=%v", username, err)
			return commands.RespondInternalError()
		}
	}

	out := cmd.OutOrStdout()
	if len(result.Reservations) == 0 {
		fmt.Fprintln(out, commands.MsgNoReservations)
		return nil
	}

	rows := make([][]string, 0, len(result.Reservations))
	for _, r := range result.Reservations {
		rows = append(rows, []string{r.Date.String(), r.Weekday.String(), r.Time.String(), strconv.Itoa(int(r.Slot))})
	}

	if err := commands.RenderTable(out, commands.Table{
		Title:        fmt.Sprintf("Your %s reservations:", result.Horizon),
		Headers:      []string{"DATE", "WEEKDAY", "TIME", "SLOT"},
		Rows:         rows,
		RightAligned: []int{4},
	}); err != nil {
		return commands.RespondInternalError()
	}

	h.logger.Info("list - Reservations listed: user=%s, horizon=%s, count=%d", username, result.Horizon, len(result.Reservations))
	return nil
}
