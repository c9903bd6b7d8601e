package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrNoAnswer возвращается, если за отведенные попытки не получен ответ yes/no
var ErrNoAnswer = errors.New("commands: no valid answer")

// Prompter читает ответы пользователя построчно
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter создает Prompter. Один Prompter на команду: bufio читает вперед.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask печатает label и возвращает введенную строку без пробелов по краям
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm задает вопрос yes/no не более maxAttempts раз
func (p *Prompter) Confirm(question string, maxAttempts int) (bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		answer, err := p.Ask(question + " (yes/no): ")
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrNoAnswer, err)
		}

		switch strings.ToLower(answer) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}

	return false, ErrNoAnswer
}

// ParseDate разбирает --date
func ParseDate(s string) (types.Date, error) {
	d, err := types.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return types.Date{}, RespondInvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// ParseTime разбирает --time
func ParseTime(s string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(strings.TrimSpace(s))
	if err != nil {
		return "", RespondInvalidInput(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return t, nil
}

// ParseSlot проверяет --slot
func ParseSlot(n int) (domain.SlotIndex, error) {
	slot := domain.SlotIndex(n)
	if !slot.IsValid() {
		return 0, RespondInvalidInput(fmt.Sprintf("invalid slot %d, expected 1-%d", n, len(domain.SlotIndexes)))
	}
	return slot, nil
}
