package middleware

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

// MetricsRecorder интерфейс для записи метрик команд
type MetricsRecorder interface {
	ObserveCommand(command, outcome string, started time.Time)
}

// Metrics записывает длительность и исход каждой команды
func Metrics(recorder MetricsRecorder) Middleware {
	return func(next RunE) RunE {
		return func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			err := next(cmd, args)

			outcome := metrics.OutcomeSuccess
			switch {
			case err == nil:
			case commands.IsRejection(err):
				outcome = metrics.OutcomeRejected
			default:
				outcome = metrics.OutcomeError
			}

			recorder.ObserveCommand(cmd.CommandPath(), outcome, started)
			return err
		}
	}
}
