package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"fastbreak/internal/domain/assignment"
	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/availability"
)

// PodStore persists assignment pods.
type PodStore interface {
	SavePod(ctx context.Context, p assignment.Pod) error
}

// AvailabilityReader reads a single availability slot.
type AvailabilityReader interface {
	Get(ctx context.Context, counselorID, date, session string) (availability.State, error)
}

// SaveAssignmentsInput carries the pods for one slot.
type SaveAssignmentsInput struct {
	Date    string
	Session string
	Pods    []assignment.Pod

	ActorID    string
	ActorEmail string
	ActorRole  string
}

// SaveAssignmentsDeps holds dependencies for SaveAssignments.
type SaveAssignmentsDeps struct {
	AssignmentStore   PodStore
	AvailabilityStore AvailabilityReader
	AuditStore        AuditSaver
}

// ExecuteSaveAssignments replaces the pods for one date/session slot.
// Each pod is validated and its counselor must have declared the slot
// available. An empty roster clears the counselor's pod.
// PRE: every pod matches input.Date and input.Session
// POST: stored pods for the slot equal the input exactly
func ExecuteSaveAssignments(ctx context.Context, input SaveAssignmentsInput, deps SaveAssignmentsDeps) error {
	for _, p := range input.Pods {
		if p.Date != input.Date || p.Session != input.Session {
			return fmt.Errorf("pod for %s/%s does not match slot %s/%s", p.Date, p.Session, input.Date, input.Session)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		state, err := deps.AvailabilityStore.Get(ctx, p.CounselorID, p.Date, p.Session)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if state != availability.StateAvailable {
			return fmt.Errorf("counselor %s is not available on %s %s", p.CounselorID, p.Date, p.Session)
		}
	}

	for _, p := range input.Pods {
		if err := deps.AssignmentStore.SavePod(ctx, p); err != nil {
			return fmt.Errorf("failed to save pod: %w", err)
		}
	}

	if deps.AuditStore != nil {
		event := audit.NewEvent(input.ActorID, input.ActorEmail, input.ActorRole, audit.CategoryAssignment, audit.ActionUpdate).
			WithResource("slot", input.Date+"/"+input.Session).
			WithDescription(fmt.Sprintf("saved %d pods for %s %s", len(input.Pods), input.Date, input.Session))
		if err := deps.AuditStore.Save(ctx, event); err != nil {
			slog.Error("audit_save_failed", "error", err)
		}
	}

	slog.Info("assignment_event", "action", "save", "date", input.Date, "session", input.Session, "pods", len(input.Pods))
	return nil
}
