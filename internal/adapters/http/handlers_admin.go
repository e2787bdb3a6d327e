package web

import (
	"net/http"
	"strconv"

	accountStore "fastbreak/internal/adapters/storage/account"
	auditStore "fastbreak/internal/adapters/storage/audit"
	"fastbreak/internal/application/listutil"
	"fastbreak/internal/application/orchestrators"
	"fastbreak/internal/application/projections"
	auditDomain "fastbreak/internal/domain/audit"
)

// accountView is an Account stripped of credentials for API responses.
type accountView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	PhotoURL  string `json:"photoUrl"`
	ShirtSize string `json:"shirtSize"`
}

// handleListAccounts handles GET /api/admin/accounts?page=&per_page=,
// the paginated account roster.
func handleListAccounts(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParsePageParams(r.URL.Query())

	total, err := stores.AccountStore.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	info := listutil.NewPageInfo(params.Page, params.PerPage, total)

	accounts, err := stores.AccountStore.List(r.Context(), accountStore.ListFilter{
		Limit:  info.PerPage,
		Offset: info.Offset(),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			Phone:     a.Phone,
			Role:      a.Role,
			PhotoURL:  a.PhotoURL,
			ShirtSize: a.ShirtSize,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accounts":   views,
		"page":       info.Page,
		"perPage":    info.PerPage,
		"total":      info.Total,
		"totalPages": info.TotalPages,
		"from":       info.StartRow(),
		"to":         info.EndRow(),
	})
}

// handleGetSchedule handles GET /api/schedule?month=YYYY-MM, the admin
// staffing board built from the schedule mirror.
func handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParam(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := projections.QueryGetScheduleBoard(r.Context(), projections.GetScheduleBoardQuery{
		Year:  year,
		Month: month,
	}, projections.GetScheduleBoardDeps{
		ScheduleStore: stores.ScheduleStore,
		AccountStore:  stores.AccountStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleDeleteCounselor handles DELETE /api/counselors/{id}.
func handleDeleteCounselor(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	err := orchestrators.ExecuteDeleteCounselor(r.Context(), orchestrators.DeleteCounselorInput{
		CounselorID: id,
		ActorID:     sess.AccountID,
		ActorEmail:  sess.Email,
		ActorRole:   sess.Role,
	}, orchestrators.DeleteCounselorDeps{
		AccountStore:      stores.AccountStore,
		AssignmentStore:   stores.AssignmentStore,
		AvailabilityStore: stores.AvailabilityStore,
		ScheduleStore:     stores.ScheduleStore,
		AuditStore:        stores.AuditStore,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	// Any live session for the deleted account is now invalid.
	sessions.DeleteByAccount(id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleDeleteCamper handles DELETE /api/campers/{id}.
func handleDeleteCamper(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	err := orchestrators.ExecuteDeleteCamper(r.Context(), orchestrators.DeleteCamperInput{
		CamperID:   r.PathValue("id"),
		ActorID:    sess.AccountID,
		ActorEmail: sess.Email,
		ActorRole:  sess.Role,
	}, orchestrators.DeleteCamperDeps{
		CamperStore:     stores.CamperStore,
		AssignmentStore: stores.AssignmentStore,
		GuardianStore:   stores.GuardianStore,
		AuditStore:      stores.AuditStore,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleDeleteParent handles DELETE /api/parents/{id}. Campers linked
// to the parent remain.
func handleDeleteParent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	err := orchestrators.ExecuteDeleteParent(r.Context(), orchestrators.DeleteParentInput{
		ParentID:   id,
		ActorID:    sess.AccountID,
		ActorEmail: sess.Email,
		ActorRole:  sess.Role,
	}, orchestrators.DeleteParentDeps{
		AccountStore:  stores.AccountStore,
		GuardianStore: stores.GuardianStore,
		ContactStore:  stores.ContactStore,
		AuditStore:    stores.AuditStore,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions.DeleteByAccount(id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleGetAudit handles GET /api/audit with optional filters.
func handleGetAudit(w http.ResponseWriter, r *http.Request) {
	filter := auditStore.Filter{}

	if category := r.URL.Query().Get("category"); category != "" {
		cat := auditDomain.Category(category)
		filter.Category = &cat
	}
	if action := r.URL.Query().Get("action"); action != "" {
		act := auditDomain.Action(action)
		filter.Action = &act
	}
	if actorID := r.URL.Query().Get("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if severity := r.URL.Query().Get("severity"); severity != "" {
		sev := auditDomain.Severity(severity)
		filter.Severity = &sev
	}
	if resourceID := r.URL.Query().Get("resource_id"); resourceID != "" {
		filter.ResourceID = &resourceID
	}
	if fromDate := r.URL.Query().Get("from"); fromDate != "" {
		filter.FromDate = &fromDate
	}
	if toDate := r.URL.Query().Get("to"); toDate != "" {
		filter.ToDate = &toDate
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	events, err := stores.AuditStore.List(r.Context(), filter, limit)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  limit,
	})
}

// handleGetOutbox handles GET /api/admin/outbox, showing the email
// queue: entries still being retried and entries that gave up.
func handleGetOutbox(w http.ResponseWriter, r *http.Request) {
	pending, err := stores.OutboxStore.ListPending(r.Context(), 100)
	if err != nil {
		internalError(w, err)
		return
	}
	failed, err := stores.OutboxStore.ListFailed(r.Context(), 100)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pending": pending,
		"failed":  failed,
	})
}
