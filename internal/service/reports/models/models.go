package models

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// ReportRequest запрос отчета
type ReportRequest struct {
	Kind     domain.ReportKind
	Username *domain.Identity // nil - по всем пользователям
	TopN     int              // 0 - значение по умолчанию
}

// ReportResponse таблицы отчета. Заполнены только таблицы, выбранные Kind.
type ReportResponse struct {
	Title  string
	Kind   domain.ReportKind
	TopN   int
	Days   []domain.DayCount
	Times  []domain.TimeCount
	Weekly []domain.DayTimeCount
}

// IsEmpty возвращает true, если в отчет не попало ни одного бронирования
func (r *ReportResponse) IsEmpty() bool {
	return len(r.Days) == 0 && len(r.Times) == 0 && len(r.Weekly) == 0
}
