package projections

import (
	"context"
	"fmt"
	"time"

	"fastbreak/internal/domain/availability"
)

// GetAvailabilityMonthQuery carries query parameters.
type GetAvailabilityMonthQuery struct {
	CounselorID string
	Year        int
	Month       int // 1..12
}

// GetAvailabilityMonthResult carries one Day per calendar date,
// including dates with nothing declared.
type GetAvailabilityMonthResult struct {
	YearMonth string
	Days      []availability.Day
}

// AvailabilityMonthStore defines the availability store interface for this projection.
type AvailabilityMonthStore interface {
	ListMonth(ctx context.Context, counselorID, yearMonth string) ([]availability.Record, error)
}

// GetAvailabilityMonthDeps holds dependencies for GetAvailabilityMonth.
type GetAvailabilityMonthDeps struct {
	AvailabilityStore AvailabilityMonthStore
}

// QueryGetAvailabilityMonth builds the counselor's calendar view for
// one month.
// PRE: month is 1..12
// POST: Days covers every date of the month in order
func QueryGetAvailabilityMonth(ctx context.Context, query GetAvailabilityMonthQuery, deps GetAvailabilityMonthDeps) (GetAvailabilityMonthResult, error) {
	if query.Month < 1 || query.Month > 12 {
		return GetAvailabilityMonthResult{}, fmt.Errorf("month must be 1..12, got %d", query.Month)
	}
	dates := availability.MonthDates(query.Year, time.Month(query.Month))
	yearMonth := dates[0][:7]

	records, err := deps.AvailabilityStore.ListMonth(ctx, query.CounselorID, yearMonth)
	if err != nil {
		return GetAvailabilityMonthResult{}, err
	}

	byDate := make(map[string][]availability.Record)
	for _, r := range records {
		byDate[r.Date] = append(byDate[r.Date], r)
	}

	days := make([]availability.Day, 0, len(dates))
	for _, date := range dates {
		days = append(days, availability.DayFromRecords(date, byDate[date]))
	}
	return GetAvailabilityMonthResult{YearMonth: yearMonth, Days: days}, nil
}
