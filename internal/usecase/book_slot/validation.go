package book_slot

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(string(req.Username)) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if len(req.Username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username is longer than %d characters", ErrInvalidInput, domain.MaxUsernameLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	// Бронировать можно только канонические времена
	if !domain.IsCanonicalTime(req.Time) {
		return fmt.Errorf("%w: time %s is not a bookable time", ErrInvalidInput, req.Time)
	}

	if !req.Slot.IsValid() {
		return fmt.Errorf("%w: slot must be one of %v", ErrInvalidInput, domain.SlotIndexes)
	}

	return nil
}
