package web

import (
	"net/http"

	"fastbreak/internal/application/orchestrators"
	"fastbreak/internal/application/projections"
	"fastbreak/internal/domain/assignment"
	"fastbreak/internal/domain/availability"
)

// handleGetAssignments handles GET /api/assignments?date=YYYY-MM-DD&session=morning.
// Returns the saved pods for the slot plus every counselor available to assign.
func handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	session := r.URL.Query().Get("session")
	if session == "" {
		session = availability.SessionMorning
	}

	res, err := projections.QueryGetAssignmentBoard(r.Context(), projections.GetAssignmentBoardQuery{
		Date:    date,
		Session: session,
	}, projections.GetAssignmentBoardDeps{
		AssignmentStore: stores.AssignmentStore,
		CamperStore:     stores.CamperStore,
		ScheduleStore:   stores.ScheduleStore,
		AccountStore:    stores.AccountStore,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSaveAssignments handles POST /api/assignments, replacing the
// pods for one date/session slot.
func handleSaveAssignments(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Date    string `json:"date"`
		Session string `json:"session"`
		Pods    []struct {
			CounselorID string   `json:"counselorId"`
			CamperIDs   []string `json:"camperIds"`
		} `json:"pods"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pods := make([]assignment.Pod, 0, len(req.Pods))
	for _, p := range req.Pods {
		pods = append(pods, assignment.Pod{
			Date:        req.Date,
			Session:     req.Session,
			CounselorID: p.CounselorID,
			CamperIDs:   p.CamperIDs,
		})
	}

	err := orchestrators.ExecuteSaveAssignments(r.Context(), orchestrators.SaveAssignmentsInput{
		Date:       req.Date,
		Session:    req.Session,
		Pods:       pods,
		ActorID:    sess.AccountID,
		ActorEmail: sess.Email,
		ActorRole:  sess.Role,
	}, orchestrators.SaveAssignmentsDeps{
		AssignmentStore:   stores.AssignmentStore,
		AvailabilityStore: stores.AvailabilityStore,
		AuditStore:        stores.AuditStore,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
