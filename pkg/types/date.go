package types

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate возвращается, если строка не в формате YYYY-MM-DD
var ErrInvalidDate = errors.New("types: invalid date, expected YYYY-MM-DD")

// Date календарная дата без времени и часового пояса.
// Сравнима через ==, поэтому используется как часть ключа в map.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf возвращает календарную дату момента t в его часовом поясе
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит строку "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(parsed), nil
}

// MustDate как ParseDate, но паникует при ошибке
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

// String возвращает дату в формате ISO "YYYY-MM-DD"
func (d Date) String() string {
	return d.Time(time.UTC).Format(dateLayout)
}

// Time возвращает полночь даты в часовом поясе loc
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// AddDays сдвигает дату на n дней (n может быть отрицательным)
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
