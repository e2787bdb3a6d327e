package projections

import (
	"context"
	"sort"

	"fastbreak/internal/domain/assignment"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/camper"
	"fastbreak/internal/domain/schedule"
)

// GetAssignmentBoardQuery carries query parameters.
type GetAssignmentBoardQuery struct {
	Date    string // YYYY-MM-DD
	Session string
}

// PodView is one counselor's pod with names resolved.
type PodView struct {
	CounselorID   string
	CounselorName string
	Campers       []CamperRef
}

// CamperRef is a camper in roster order.
type CamperRef struct {
	ID   string
	Name string
}

// AvailableCounselor is a counselor who declared the slot available,
// with their current pod load.
type AvailableCounselor struct {
	ID       string
	Name     string
	Assigned int
}

// GetAssignmentBoardResult carries the query result.
type GetAssignmentBoardResult struct {
	Date      string
	Session   string
	Pods      []PodView
	Available []AvailableCounselor
}

// BoardAssignmentStore defines the assignment store interface for this projection.
type BoardAssignmentStore interface {
	ListBySlot(ctx context.Context, date, session string) ([]assignment.Pod, error)
}

// BoardCamperStore defines the camper store interface for this projection.
type BoardCamperStore interface {
	ListByIDs(ctx context.Context, ids []string) ([]camper.Camper, error)
}

// BoardMirrorStore defines the mirror store interface for this projection.
type BoardMirrorStore interface {
	ListByDate(ctx context.Context, date string) ([]schedule.Entry, error)
}

// GetAssignmentBoardDeps holds dependencies for GetAssignmentBoard.
type GetAssignmentBoardDeps struct {
	AssignmentStore BoardAssignmentStore
	CamperStore     BoardCamperStore
	ScheduleStore   BoardMirrorStore
	AccountStore    BoardAccountStore
}

// QueryGetAssignmentBoard builds the admin pod view for one slot: the
// saved pods plus every counselor available for assignment.
// PRE: date is YYYY-MM-DD, session is morning or afternoon
// POST: pod rosters keep stored order; available list sorted by name
func QueryGetAssignmentBoard(ctx context.Context, query GetAssignmentBoardQuery, deps GetAssignmentBoardDeps) (GetAssignmentBoardResult, error) {
	slot := availability.Record{CounselorID: "slot-check", Date: query.Date, Session: query.Session, State: availability.StateAvailable}
	if err := slot.Validate(); err != nil {
		return GetAssignmentBoardResult{}, err
	}

	pods, err := deps.AssignmentStore.ListBySlot(ctx, query.Date, query.Session)
	if err != nil {
		return GetAssignmentBoardResult{}, err
	}

	// Resolve camper names in one batch.
	var allIDs []string
	for _, p := range pods {
		allIDs = append(allIDs, p.CamperIDs...)
	}
	camperNames := make(map[string]string, len(allIDs))
	if len(allIDs) > 0 {
		campers, err := deps.CamperStore.ListByIDs(ctx, allIDs)
		if err != nil {
			return GetAssignmentBoardResult{}, err
		}
		for _, c := range campers {
			camperNames[c.ID] = c.Name
		}
	}

	counselorName := func(id string) string {
		a, err := deps.AccountStore.GetByID(ctx, id)
		if err != nil {
			return ""
		}
		return a.Name
	}

	assigned := make(map[string]int, len(pods))
	views := make([]PodView, 0, len(pods))
	for _, p := range pods {
		view := PodView{CounselorID: p.CounselorID, CounselorName: counselorName(p.CounselorID)}
		for _, id := range p.CamperIDs {
			view.Campers = append(view.Campers, CamperRef{ID: id, Name: camperNames[id]})
		}
		assigned[p.CounselorID] = len(p.CamperIDs)
		views = append(views, view)
	}

	entries, err := deps.ScheduleStore.ListByDate(ctx, query.Date)
	if err != nil {
		return GetAssignmentBoardResult{}, err
	}
	var available []AvailableCounselor
	for _, e := range entries {
		flag := e.Morning
		if query.Session == availability.SessionAfternoon {
			flag = e.Afternoon
		}
		if flag == nil || !*flag {
			continue
		}
		available = append(available, AvailableCounselor{
			ID:       e.CounselorID,
			Name:     counselorName(e.CounselorID),
			Assigned: assigned[e.CounselorID],
		})
	}
	sort.Slice(available, func(i, j int) bool {
		if available[i].Name != available[j].Name {
			return available[i].Name < available[j].Name
		}
		return available[i].ID < available[j].ID
	})

	return GetAssignmentBoardResult{Date: query.Date, Session: query.Session, Pods: views, Available: available}, nil
}
