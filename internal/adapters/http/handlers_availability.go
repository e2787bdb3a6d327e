package web

import (
	"errors"
	"net/http"
	"time"

	"fastbreak/internal/application/orchestrators"
	"fastbreak/internal/application/projections"
)

// parseMonthParam reads a month=YYYY-MM query parameter, defaulting to
// the current month.
func parseMonthParam(r *http.Request) (year int, month int, err error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := timeNow()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, errors.New("month must be YYYY-MM")
	}
	return t.Year(), int(t.Month()), nil
}

// handleGetAvailability handles GET /api/availability?month=YYYY-MM for
// the signed-in counselor.
func handleGetAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	year, month, err := parseMonthParam(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := projections.QueryGetAvailabilityMonth(r.Context(), projections.GetAvailabilityMonthQuery{
		CounselorID: sess.AccountID,
		Year:        year,
		Month:       month,
	}, projections.GetAvailabilityMonthDeps{AvailabilityStore: stores.AvailabilityStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleToggleAvailability handles POST /api/availability/toggle.
// A 409 response carries the assigned-camper count and asks the client
// to re-submit with confirmed=true.
func handleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Date      string `json:"date"`
		Session   string `json:"session"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := orchestrators.ExecuteToggleAvailability(r.Context(), orchestrators.ToggleAvailabilityInput{
		CounselorID: sess.AccountID,
		Date:        req.Date,
		Session:     req.Session,
		Confirmed:   req.Confirmed,
		ActorEmail:  sess.Email,
		ActorRole:   sess.Role,
	}, orchestrators.ToggleAvailabilityDeps{
		AvailabilityStore: stores.AvailabilityStore,
		ScheduleStore:     stores.ScheduleStore,
		AssignmentStore:   stores.AssignmentStore,
		AuditStore:        stores.AuditStore,
	})
	if err != nil {
		var confirm *orchestrators.ConfirmationRequiredError
		if errors.As(err, &confirm) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"confirmationRequired": true,
				"assignedCampers":      confirm.AssignedCampers,
			})
			return
		}
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(state)})
}

// handleMonthAvailability handles POST /api/availability/month, the
// mark-all/clear-all sweep. Like the single toggle, a 409 response
// carries the assigned-camper count and asks for confirmed=true.
func handleMonthAvailability(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Month     string `json:"month"` // YYYY-MM
		Mark      bool   `json:"mark"`
		Confirmed bool   `json:"confirmed"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t, err := time.Parse("2006-01", req.Month)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	err = orchestrators.ExecuteMonthAvailability(r.Context(), orchestrators.MonthAvailabilityInput{
		CounselorID: sess.AccountID,
		Year:        t.Year(),
		Month:       int(t.Month()),
		Mark:        req.Mark,
		Confirmed:   req.Confirmed,
		ActorEmail:  sess.Email,
		ActorRole:   sess.Role,
	}, orchestrators.ToggleAvailabilityDeps{
		AvailabilityStore: stores.AvailabilityStore,
		ScheduleStore:     stores.ScheduleStore,
		AssignmentStore:   stores.AssignmentStore,
		AuditStore:        stores.AuditStore,
	})
	if err != nil {
		var confirm *orchestrators.ConfirmationRequiredError
		if errors.As(err, &confirm) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"confirmationRequired": true,
				"assignedCampers":      confirm.AssignedCampers,
			})
			return
		}
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
