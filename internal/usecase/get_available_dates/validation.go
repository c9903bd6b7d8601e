package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	// Страницы раньше текущей недели не показываются
	if req.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}
	if req.Page > domain.MaxPage {
		return fmt.Errorf("%w: page must be at most %d", ErrInvalidInput, domain.MaxPage)
	}

	if req.WindowDays != 0 && (req.WindowDays < domain.MinWindowDays || req.WindowDays > domain.MaxWindowDays) {
		return fmt.Errorf("%w: window must be between %d and %d days", ErrInvalidInput, domain.MinWindowDays, domain.MaxWindowDays)
	}

	if req.Start != nil && req.Start.IsZero() {
		return fmt.Errorf("%w: start date is empty", ErrInvalidInput)
	}

	return nil
}
