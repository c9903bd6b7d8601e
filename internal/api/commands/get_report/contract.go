package get_report

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/reports/models"
)

type ReportService interface {
	Generate(ctx context.Context, req *models.ReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
