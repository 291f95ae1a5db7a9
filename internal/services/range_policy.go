package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrFromDateInvalid = errors.New("invalid from date")
	ErrToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid    = errors.New("invalid date range")
)

// ParseDateRange turns optional from/to query values into timestamp bounds.
// Callers treat the to date as inclusive, so the returned upper bound points
// at the start of the following day.
func ParseDateRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	fromRaw := strings.TrimSpace(rawFrom)
	toRaw := strings.TrimSpace(rawTo)

	var from *time.Time
	if fromRaw != "" {
		parsedFrom, err := time.ParseInLocation("2006-01-02", fromRaw, location)
		if err != nil {
			return nil, nil, ErrFromDateInvalid
		}
		from = &parsedFrom
	}

	var to *time.Time
	if toRaw != "" {
		parsedTo, err := time.ParseInLocation("2006-01-02", toRaw, location)
		if err != nil {
			return nil, nil, ErrToDateInvalid
		}
		if from != nil && parsedTo.Before(*from) {
			return nil, nil, ErrRangeInvalid
		}
		endExclusive := parsedTo.AddDate(0, 0, 1)
		to = &endExclusive
	}

	return from, to, nil
}
