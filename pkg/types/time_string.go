package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM" (локальное, без даты)
type TimeString string

// NewTimeString получает TimeString из времени (часы и минуты в его локации)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes сдвигает время на n минут. Переход через полночь считается ошибкой
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	total := t.Minutes() + n
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day", ErrInvalidTimeString, t, n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени: указанный день (в его локации) + это время суток
func (t TimeString) On(day time.Time) time.Time {
	y, m, d := day.Date()
	minutes := t.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}
