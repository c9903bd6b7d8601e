package get_available_dates

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	getAvailableDates "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidWindow = "invalid window: page cannot be negative and days must be in range"
	msgPersistence   = "reservations storage is unavailable"
	msgNoDates       = "No available dates in this window."
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type flags struct {
	from string
	days int
	page int
}

// Command availability dates [--from] [--days] [--page]
func (h *Handler) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "List dates that still have a free slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.from, "from", "", "first date of page 0, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&f.days, "days", 0, "window size in days (default from config)")
	cmd.Flags().IntVar(&f.page, "page", 0, "window number, 0 is the current week")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, f flags) error {
	req := &getAvailableDates.Request{WindowDays: f.days, Page: f.page}
	if f.from != "" {
		start, err := commands.ParseDate(f.from)
		if err != nil {
			return err
		}
		req.Start = ptr.Ptr(start)
	}

	result, err := h.useCase.Execute(cmd.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("availability dates - Invalid input: %v", err)
			return commands.RespondInvalidInput(msgInvalidWindow)

		case errors.Is(err, getAvailableDates.ErrPersistence):
			h.logger.Error("availability dates - Persistence failure: %v", err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("availability dates - Failed to get dates: %v", err)
			return commands.RespondInternalError()
		}
	}

	out := cmd.OutOrStdout()
	last := result.Start.AddDays(result.WindowDays - 1)
	fmt.Fprintf(out, "Available dates %s - %s (page %d):\n", result.Start, last, result.Page)

	if len(result.Dates) == 0 {
		fmt.Fprintln(out, msgNoDates)
		return nil
	}

	rows := make([][]string, 0, len(result.Dates))
	for _, d := range result.Dates {
		rows = append(rows, []string{d.Date.String(), d.Weekday.String()})
	}
	if err := commands.RenderTable(out, commands.Table{Headers: []string{"DATE", "WEEKDAY"}, Rows: rows}); err != nil {
		return commands.RespondInternalError()
	}

	if result.HasPrevious {
		fmt.Fprintf(out, "Previous window: --page %d, next window: --page %d\n", result.Page-1, result.Page+1)
	} else {
		fmt.Fprintf(out, "Next window: --page %d\n", result.Page+1)
	}

	h.logger.Info("availability dates - Dates listed: start=%s, page=%d, count=%d", result.Start, result.Page, len(result.Dates))
	return nil
}
