package cancel_reservation

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	cancelReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
)

const (
	msgNotFound       = "reservation not found"
	msgInvalidRequest = "invalid reservation: check the date, time and slot"
	msgPersistence    = "reservations storage is unavailable; the reservation may not have been cancelled"
	msgRetryExhausted = "too many concurrent changes, please try again"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type flags struct {
	date string
	time string
	slot int
}

// Command cancel --date --time --slot
func (h *Handler) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel one of your reservations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.time, "time", "", "time of day, HH:MM")
	cmd.Flags().IntVar(&f.slot, "slot", 0, "slot number, 1-3")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, f flags) error {
	username, err := middleware.RequireIdentity(cmd.Context())
	if err != nil {
		return err
	}

	date, err := commands.ParseDate(f.date)
	if err != nil {
		return err
	}
	timeOfDay, err := commands.ParseTime(f.time)
	if err != nil {
		return err
	}
	slot, err := commands.ParseSlot(f.slot)
	if err != nil {
		return err
	}

	req := &cancelReservation.Request{Username: username, Date: date, Time: timeOfDay, Slot: slot}
	if err := h.useCase.Execute(cmd.Context(), req); err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrNotFound):
			h.logger.Warn("cancel - Reservation not found: user=%s, key=%s, slot=%d", username, req.Key(), slot)
			return commands.RespondNotFound(msgNotFound)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			h.logger.Warn("cancel - Invalid input: user=%s, error=%v", username, err)
			return commands.RespondInvalidInput(msgInvalidRequest)

		case errors.Is(err, cancelReservation.ErrRetryExhausted):
			h.logger.Error("cancel - Retries exhausted: user=%s, error=%v", username, err)
			return commands.RespondUnavailable(msgRetryExhausted)

		case errors.Is(err, cancelReservation.ErrPersistence):
			h.logger.Error("cancel - Persistence failure: user=%s, error=%v", username, err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("cancel - Failed to cancel reservation: user=%s, error=%v", username, err)
			return commands.RespondInternalError()
		}
	}

	h.logger.Info("cancel - Reservation cancelled: user=%s, key=%s, slot=%d", username, req.Key(), slot)
	fmt.Fprintf(cmd.OutOrStdout(), "Cancelled slot %d on %s at %s.\n", slot, date, timeOfDay)
	return nil
}
