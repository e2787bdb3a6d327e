package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/schedule"
)

// AvailabilityStore defines the interface for availability persistence.
type AvailabilityStore interface {
	Get(ctx context.Context, counselorID, date, session string) (availability.State, error)
	Set(ctx context.Context, record availability.Record) error
	Clear(ctx context.Context, counselorID, date, session string) error
	ListMonth(ctx context.Context, counselorID, yearMonth string) ([]availability.Record, error)
	SetMonth(ctx context.Context, counselorID string, records []availability.Record) error
	ClearMonth(ctx context.Context, counselorID, yearMonth string) error
}

// ScheduleMirrorStore defines the interface for the admin mirror.
type ScheduleMirrorStore interface {
	Save(ctx context.Context, entry schedule.Entry) error
}

// AssignmentCounter counts campers assigned to a counselor for a slot.
type AssignmentCounter interface {
	CountCampers(ctx context.Context, counselorID, date, session string) (int, error)
}

// AuditSaver persists audit events.
type AuditSaver interface {
	Save(ctx context.Context, event audit.Event) error
}

// ConfirmationRequiredError signals that the toggle would take an
// available slot away from campers already assigned to the counselor,
// and the caller must re-submit with Confirmed set.
type ConfirmationRequiredError struct {
	AssignedCampers int
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%d campers are assigned to this session; confirm to proceed", e.AssignedCampers)
}

// ToggleAvailabilityInput carries input for the orchestrator.
type ToggleAvailabilityInput struct {
	CounselorID string
	Date        string
	Session     string
	Confirmed   bool

	// Actor fields for the audit trail.
	ActorEmail string
	ActorRole  string
}

// ToggleAvailabilityDeps holds dependencies for ToggleAvailability.
type ToggleAvailabilityDeps struct {
	AvailabilityStore AvailabilityStore
	ScheduleStore     ScheduleMirrorStore
	AssignmentStore   AssignmentCounter
	AuditStore        AuditSaver
}

// ExecuteToggleAvailability advances one slot through the cycle
// unset → available → unavailable → unset and rewrites the schedule
// mirror for the day.
// PRE: date is YYYY-MM-DD, session is morning or afternoon
// POST: Slot holds the successor state; mirror matches; returns the new state
// INVARIANT: the mirror never disagrees with availability after return
func ExecuteToggleAvailability(ctx context.Context, input ToggleAvailabilityInput, deps ToggleAvailabilityDeps) (availability.State, error) {
	slot := availability.Record{CounselorID: input.CounselorID, Date: input.Date, Session: input.Session, State: availability.StateAvailable}
	if err := slot.Validate(); err != nil {
		return availability.StateUnset, err
	}

	current, err := deps.AvailabilityStore.Get(ctx, input.CounselorID, input.Date, input.Session)
	if err != nil {
		return availability.StateUnset, fmt.Errorf("failed to read availability: %w", err)
	}
	next := availability.Next(current)

	// Leaving the available state while campers are assigned needs an
	// explicit confirmation from the counselor.
	if current == availability.StateAvailable && !input.Confirmed {
		count, err := deps.AssignmentStore.CountCampers(ctx, input.CounselorID, input.Date, input.Session)
		if err != nil {
			return availability.StateUnset, fmt.Errorf("failed to count assignments: %w", err)
		}
		if count > 0 {
			return current, &ConfirmationRequiredError{AssignedCampers: count}
		}
	}

	if next == availability.StateUnset {
		err = deps.AvailabilityStore.Clear(ctx, input.CounselorID, input.Date, input.Session)
	} else {
		err = deps.AvailabilityStore.Set(ctx, availability.Record{
			CounselorID: input.CounselorID, Date: input.Date, Session: input.Session, State: next,
		})
	}
	if err != nil {
		return availability.StateUnset, fmt.Errorf("failed to write availability: %w", err)
	}

	if err := rewriteMirrorDay(ctx, deps, input.CounselorID, input.Date); err != nil {
		return availability.StateUnset, err
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.CounselorID, input.ActorEmail, input.ActorRole, audit.CategoryAvailability, audit.ActionToggle).
			WithResource("availability", availability.SlotKey(input.Date, input.Session)).
			WithDescription(fmt.Sprintf("availability %s -> %s", current, next))
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("availability_event", "action", "toggle", "counselor_id", input.CounselorID,
		"slot", availability.SlotKey(input.Date, input.Session), "state", string(next))
	return next, nil
}

// MonthAvailabilityInput carries input for the bulk month operations.
type MonthAvailabilityInput struct {
	CounselorID string
	Year        int
	Month       int // 1..12
	Mark        bool
	Confirmed   bool

	ActorEmail string
	ActorRole  string
}

// ExecuteMonthAvailability marks every session of a month available, or
// clears every declaration, in one sweep. Mark overwrites unavailable
// slots; clear returns everything to unset.
// PRE: month is 1..12
// POST: Every slot in the month holds the requested state; mirror rewritten
func ExecuteMonthAvailability(ctx context.Context, input MonthAvailabilityInput, deps ToggleAvailabilityDeps) error {
	if input.Month < 1 || input.Month > 12 {
		return fmt.Errorf("month must be 1..12, got %d", input.Month)
	}
	if input.CounselorID == "" {
		return availability.ErrEmptyCounselorID
	}

	dates := availability.MonthDates(input.Year, time.Month(input.Month))
	yearMonth := dates[0][:7]

	// A sweep over a month that already carries camper assignments needs
	// the same explicit confirmation as the single-slot toggle.
	if !input.Confirmed {
		assigned, err := countAssignedInMonth(ctx, deps, input.CounselorID, yearMonth)
		if err != nil {
			return err
		}
		if assigned > 0 {
			return &ConfirmationRequiredError{AssignedCampers: assigned}
		}
	}

	if input.Mark {
		var records []availability.Record
		for _, date := range dates {
			for _, session := range availability.ValidSessions {
				records = append(records, availability.Record{
					CounselorID: input.CounselorID, Date: date, Session: session, State: availability.StateAvailable,
				})
			}
		}
		if err := deps.AvailabilityStore.SetMonth(ctx, input.CounselorID, records); err != nil {
			return fmt.Errorf("failed to mark month: %w", err)
		}
	} else {
		if err := deps.AvailabilityStore.ClearMonth(ctx, input.CounselorID, yearMonth); err != nil {
			return fmt.Errorf("failed to clear month: %w", err)
		}
	}

	for _, date := range dates {
		if err := rewriteMirrorDay(ctx, deps, input.CounselorID, date); err != nil {
			return err
		}
	}

	action := "clear_month"
	if input.Mark {
		action = "mark_month"
	}
	if deps.AuditStore != nil {
		event := audit.NewEvent(input.CounselorID, input.ActorEmail, input.ActorRole, audit.CategoryAvailability, audit.ActionUpdate).
			WithResource("availability", yearMonth).
			WithDescription(action)
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("availability_event", "action", action, "counselor_id", input.CounselorID, "month", yearMonth)
	return nil
}

// countAssignedInMonth sums the campers assigned to the counselor over
// every slot declared available in the month. Only available slots can
// carry assignments.
func countAssignedInMonth(ctx context.Context, deps ToggleAvailabilityDeps, counselorID, yearMonth string) (int, error) {
	records, err := deps.AvailabilityStore.ListMonth(ctx, counselorID, yearMonth)
	if err != nil {
		return 0, fmt.Errorf("failed to read availability: %w", err)
	}
	total := 0
	for _, r := range records {
		if r.State != availability.StateAvailable {
			continue
		}
		count, err := deps.AssignmentStore.CountCampers(ctx, counselorID, r.Date, r.Session)
		if err != nil {
			return 0, fmt.Errorf("failed to count assignments: %w", err)
		}
		total += count
	}
	return total, nil
}

// rewriteMirrorDay re-derives one counselor's mirror entry for a date
// from the availability rows.
func rewriteMirrorDay(ctx context.Context, deps ToggleAvailabilityDeps, counselorID, date string) error {
	records, err := deps.AvailabilityStore.ListMonth(ctx, counselorID, date[:7])
	if err != nil {
		return fmt.Errorf("failed to reload availability: %w", err)
	}
	var dayRecords []availability.Record
	for _, r := range records {
		if r.Date == date {
			dayRecords = append(dayRecords, r)
		}
	}
	day := availability.DayFromRecords(date, dayRecords)
	entry := schedule.FromDay(counselorID, day)
	if err := deps.ScheduleStore.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to update schedule mirror: %w", err)
	}
	return nil
}
