package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth/models"
)

// bcrypt учитывает только первые 72 байта пароля
const maxPasswordBytes = 72

func validateSignUp(req *models.SignUpRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if err := validateUsername(req.Username); err != nil {
		return err
	}

	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first name cannot be empty", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: last name cannot be empty", ErrInvalidInput)
	}

	return ValidatePassword(req.Password)
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	}

	if strings.TrimSpace(username) != username {
		return fmt.Errorf("%w: username cannot start or end with whitespace", ErrInvalidInput)
	}

	if utf8.RuneCountInString(username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username is longer than %d characters", ErrInvalidInput, domain.MaxUsernameLength)
	}

	return nil
}

// ValidatePassword проверяет политику паролей: 8-32 символа, хотя бы одна латинская буква и одна цифра
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < domain.MinPasswordLength || length > domain.MaxPasswordLength || len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
