package cancel_reservation

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса.
// Время не обязано быть каноническим: отменить можно любую запись из документа.
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(string(req.Username)) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if !req.Slot.IsValid() {
		return fmt.Errorf("%w: slot %d is out of range", ErrInvalidInput, req.Slot)
	}

	return nil
}
