package book_slot

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookSlot "github.com/m04kA/SMC-ReservationService/internal/usecase/book_slot"
)

const (
	msgSlotUnavailable = "the selected slot is not available: it is already booked or its time has passed"
	msgInvalidRequest  = "invalid reservation: check the date, time and slot"
	msgPersistence     = "reservations storage is unavailable; the booking may not have been recorded"
	msgRetryExhausted  = "too many concurrent bookings, please try again"
	msgNoConfirmation  = "no valid answer, booking cancelled"
	msgAborted         = "Booking cancelled."
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type flags struct {
	date string
	time string
	slot int
	yes  bool
}

// Command book --date --time --slot [--yes]
func (h *Handler) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot for the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.time, "time", "", "time of day, HH:MM")
	cmd.Flags().IntVar(&f.slot, "slot", 0, "slot number, 1-3")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "book without asking for confirmation")
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

	out := cmd.OutOrStdout()

	// Подтверждение, если не передан --yes
	if !f.yes {
		prompter := commands.NewPrompter(cmd.InOrStdin(), out)
		question := fmt.Sprintf("Book slot %d on %s (%s) at %s?", slot, date, date.Weekday(), timeOfDay)

		confirmed, err := prompter.Confirm(question, domain.MaxConfirmAttempts)
		if err != nil {
			h.logger.Warn("book - no confirmation: user=%s, error=%v", username, err)
			return commands.RespondInvalidInput(msgNoConfirmation)
		}
		if !confirmed {
			fmt.Fprintln(out, msgAborted)
			return nil
		}
	}

	result, err := h.useCase.Execute(cmd.Context(), &bookSlot.Request{
		Username: username,
		Date:     date,
		Time:     timeOfDay,
		Slot:     slot,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotUnavailable):
			h.logger.Warn("book - Slot unavailable: user=%s, date=%s, time=%s, slot=%d", username, date, timeOfDay, slot)
			return commands.RespondConflict(msgSlotUnavailable)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("book - Invalid input: user=%s, error=%v", username, err)
			return commands.RespondInvalidInput(msgInvalidRequest)

		case errors.Is(err, bookSlot.ErrRetryExhausted):
			h.logger.Error("book - Retries exhausted: user=%s, error=%v", username, err)
			return commands.RespondUnavailable(msgRetryExhausted)

		case errors.Is(err, bookSlot.ErrPersistence):
			h.logger.Error("book - Persistence failure: user=%s, error=%v", username, err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("book - Failed to book slot: user=%s, error=%v", username, err)
			return commands.RespondInternalError()
		}
	}

	r := result.Reservation
	h.logger.Info("book - Slot booked: user=%s, key=%s, slot=%d", username, r.Key(), r.Slot)
	fmt.Fprintf(out, "Booked slot %d on %s (%s) at %s.\n", r.Slot, r.Date, r.Date.Weekday(), r.Time)
	return nil
}
