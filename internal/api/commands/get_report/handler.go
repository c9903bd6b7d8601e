package get_report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reports"
	"github.com/m04kA/SMC-ReservationService/internal/service/reports/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidRequest = "invalid report: kind must be days, times, weekly or all and top must be positive"
	msgPersistence    = "reservations storage is unavailable"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type flags struct {
	kind string
	mine bool
	top  int
}

// Command report [--kind] [--mine] [--top]
func (h *Handler) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the most booked days, times and weekly slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.Handle(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.kind, "kind", string(domain.ReportAllKinds), "days, times, weekly or all")
	cmd.Flags().BoolVar(&f.mine, "mine", false, "only your reservations (requires login)")
	cmd.Flags().IntVar(&f.top, "top", 0, "number of rows per table (default from config)")

	return cmd
}

func (h *Handler) Handle(cmd *cobra.Command, f flags) error {
	req := &models.ReportRequest{Kind: domain.ReportKind(f.kind), TopN: f.top}

	if f.mine {
		username, err := middleware.RequireIdentity(cmd.Context())
		if err != nil {
			return err
		}
		req.Username = ptr.Ptr(username)
	}
	if f.top < 0 {
		return commands.RespondInvalidInput(msgInvalidRequest)
	}

	result, err := h.service.Generate(cmd.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("report - Invalid input: kind=%s, top=%d, error=%v", f.kind, f.top, err)
			return commands.RespondInvalidInput(msgInvalidRequest)

		case errors.Is(err, reports.ErrPersistence):
			h.logger.Error("report - Persistence failure: %v", err)
			return commands.RespondUnavailable(msgPersistence)

		default:
			h.logger.Error("report - Failed to generate report: %v", err)
			return commands.RespondInternalError()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Title)

	if result.IsEmpty() {
		fmt.Fprintln(out, commands.MsgNoReservations)
		return nil
	}

	if err := render(out, result); err != nil {
		return commands.RespondInternalError()
	}

	h.logger.Info("report - Report generated: %s, kind=%s, top=%d", result.Title, result.Kind, result.TopN)
	return nil
}

func render(out io.Writer, result *models.ReportResponse) error {
	if result.Kind.Includes(domain.ReportDays) {
		rows := make([][]string, 0, len(result.Days))
		for _, d := range result.Days {
			rows = append(rows, []string{d.Day.String(), strconv.Itoa(d.Count)})
		}
		if err := section(out, fmt.Sprintf("Top %d days of the week:", result.TopN), []string{"DAY", "RESERVATIONS"}, rows, 2); err != nil {
			return err
		}
	}

	if result.Kind.Includes(domain.ReportTimes) {
		rows := make([][]string, 0, len(result.Times))
		for _, t := range result.Times {
			rows = append(rows, []string{t.Time.String(), strconv.Itoa(t.Count)})
		}
		if err := section(out, fmt.Sprintf("Top %d times of day:", result.TopN), []string{"TIME", "RESERVATIONS"}, rows, 2); err != nil {
			return err
		}
	}

	if result.Kind.Includes(domain.ReportWeekly) {
		rows := make([][]string, 0, len(result.Weekly))
		for _, w := range result.Weekly {
			rows = append(rows, []string{w.DayTime.Day.String(), w.DayTime.Time.String(), strconv.Itoa(w.Count)})
		}
		if err := section(out, fmt.Sprintf("Top %d weekly slots:", result.TopN), []string{"DAY", "TIME", "RESERVATIONS"}, rows, 3); err != nil {
			return err
		}
	}

	return nil
}

// section выводит таблицу отчета; колонка count с количеством бронирований выравнивается вправо
func section(out io.Writer, title string, headers []string, rows [][]string, count int) error {
	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return commands.RenderTable(out, commands.Table{
		Title:        title,
		Headers:      headers,
		Rows:         rows,
		RightAligned: []int{count},
	})
}
