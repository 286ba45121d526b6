package service

import (
	"errors"
	"time"
)

// ErrInvalidDate — дата отсутствует или не разбирается.
var ErrInvalidDate = errors.New("invalid date")

// Форматы дат, принимаемые на границе записи.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate разбирает дату из запроса в локальной зоне процесса.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
