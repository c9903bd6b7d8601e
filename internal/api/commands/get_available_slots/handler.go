package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidRequest = "invalid request: time must be one of the bookable times"
	msgPersistence    = "reservations storage is unavailable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// TimesCommand availability times --date
func (h *Handler) TimesCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "times",
		Short: "List times of a date that still have a free slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.HandleTimes(cmd, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// SlotsCommand availability slots --date --time
func (h *Handler) SlotsCommand() *cobra.Command {
	var date, timeOfDay string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free slots for a date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.HandleSlots(cmd, date, timeOfDay)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "time of day, HH:MM")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func (h *Handler) HandleTimes(cmd *cobra.Command, rawDate string) error {
	date, err := commands.ParseDate(rawDate)
	if err != nil {
		return err
	}

	result, err := h.execute(cmd, &getAvailableSlots.Request{Date: date})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Times) == 0 {
		fmt.Fprintf(out, "No available times on %s.\n", date)
		return nil
	}

	rows := make([][]string, 0, len(result.Times))
	for _, t := range result.Times {
		rows = append(rows, []string{t.Time.String(), commands.FormatSlots(t.Slots)})
	}

	if err := commands.RenderTable(out, commands.Table{
		Title:   fmt.Sprintf("Available times on %s (%s):", date, date.Weekday()),
		Headers: []string{"TIME", "FREE SLOTS"},
		Rows:    rows,
	}); err != nil {
		return commands.RespondInternalError()
	}
	return nil
}

func (h *Handler) HandleSlots(cmd *cobra.Command, rawDate, rawTime string) error {
	date, err := commands.ParseDate(rawDate)
	if err != nil {
		return err
	}
	timeOfDay, err := commands.ParseTime(rawTime)
	if err != nil {
		return err
	}

	result, err := h.execute(cmd, &getAvailableSlots.Request{Date: date, Time: ptr.Ptr(timeOfDay)})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var free []string
	for _, t := range result.Times {
		if t.Time == timeOfDay && len(t.Slots) > 0 {
			free = append(free, commands.FormatSlots(t.Slots))
		}
	}
	if len(free) == 0 {
		fmt.Fprintf(out, "No free slots on %s at %s.\n", date, timeOfDay)
		return nil
	}

	fmt.Fprintf(out, "Free slots on %s at %s: %s\n", date, timeOfDay, free[0])
	return nil
}

func (h *Handler) execute(cmd *cobra.Command, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	result, err := h.useCase.Execute(cmd.Context(), req)
	if err == nil {
		h.logger.Info("%s - Availability listed: date=%s, times=%d", cmd.CommandPath(), req.Date, len(result.Times))
		return result, nil
	}

	switch {
	case errors.Is(err, getAvailableSlots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: date=%s, time=%s, error=%v", cmd.CommandPath(), req.Date, timeOrEmpty(req.Time), err)
		return nil, commands.RespondInvalidInput(msgInvalidRequest)

	case errors.Is(err, getAvailableSlots.ErrPersistence):
		h.logger.Error("%s - Persistence failure: %v", cmd.CommandPath(), err)
		return nil, commands.RespondUnavailable(msgPersistence)

	default:
		h.logger.Error("%s - Failed to get availability: %v", cmd.CommandPath(), err)
		return nil, commands.RespondInternalError()
	}
}

func timeOrEmpty(t *types.TimeString) string {
	if t == nil {
		return ""
	}
	return t.String()
}
