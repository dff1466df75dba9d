package utils

import "time"

// ParseDate interpreta datas no formato AAAA-MM-DD no fuso informado; vazio retorna nil
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// FirstDayOfMonth retorna a meia-noite do primeiro dia do mês de date, no fuso de date
func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
