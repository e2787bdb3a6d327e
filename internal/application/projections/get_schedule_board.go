package projections

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/schedule"
)

// GetScheduleBoardQuery carries query parameters.
type GetScheduleBoardQuery struct {
	Year  int
	Month int // 1..12
}

// BoardEntry is one counselor's declared sessions for one date.
type BoardEntry struct {
	CounselorID   string
	CounselorName string
	Morning       *bool
	Afternoon     *bool
}

// BoardDay groups the entries for one date, ordered by counselor name.
type BoardDay struct {
	Date    string
	Entries []BoardEntry
}

// GetScheduleBoardResult carries the query result. Days holds only
// dates with at least one declaration.
type GetScheduleBoardResult struct {
	YearMonth string
	Days      []BoardDay
}

// ScheduleBoardStore defines the mirror store interface for this projection.
type ScheduleBoardStore interface {
	ListMonth(ctx context.Context, yearMonth string) ([]schedule.Entry, error)
}

// BoardAccountStore defines the account store interface for this projection.
type BoardAccountStore interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

// GetScheduleBoardDeps holds dependencies for GetScheduleBoard.
type GetScheduleBoardDeps struct {
	ScheduleStore ScheduleBoardStore
	AccountStore  BoardAccountStore
}

// QueryGetScheduleBoard builds the admin staffing view for a month
// from the schedule mirror, resolving counselor names.
// PRE: month is 1..12
// POST: Days are in date order; entries within a day by counselor name
func QueryGetScheduleBoard(ctx context.Context, query GetScheduleBoardQuery, deps GetScheduleBoardDeps) (GetScheduleBoardResult, error) {
	if query.Month < 1 || query.Month > 12 {
		return GetScheduleBoardResult{}, fmt.Errorf("month must be 1..12, got %d", query.Month)
	}
	yearMonth := availability.MonthDates(query.Year, time.Month(query.Month))[0][:7]

	entries, err := deps.ScheduleStore.ListMonth(ctx, yearMonth)
	if err != nil {
		return GetScheduleBoardResult{}, err
	}

	names := make(map[string]string)
	byDate := make(map[string][]BoardEntry)
	for _, e := range entries {
		name, ok := names[e.CounselorID]
		if !ok {
			if a, err := deps.AccountStore.GetByID(ctx, e.CounselorID); err == nil {
				name = a.Name
			}
			names[e.CounselorID] = name
		}
		byDate[e.Date] = append(byDate[e.Date], BoardEntry{
			CounselorID:   e.CounselorID,
			CounselorName: name,
			Morning:       e.Morning,
			Afternoon:     e.Afternoon,
		})
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]BoardDay, 0, len(dates))
	for _, date := range dates {
		rows := byDate[date]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].CounselorName != rows[j].CounselorName {
				return rows[i].CounselorName < rows[j].CounselorName
			}
			return rows[i].CounselorID < rows[j].CounselorID
		})
		days = append(days, BoardDay{Date: date, Entries: rows})
	}
	return GetScheduleBoardResult{YearMonth: yearMonth, Days: days}, nil
}
