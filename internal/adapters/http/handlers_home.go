package web

import (
	"net/http"

	"fastbreak/internal/application/projections"
)

// handleParentHome handles GET /api/home for the signed-in parent: the
// account, its campers, emergency contacts, and registration history.
func handleParentHome(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	res, err := projections.QueryGetParentHome(r.Context(), projections.GetParentHomeQuery{
		ParentID: sess.AccountID,
	}, projections.GetParentHomeDeps{
		AccountStore:      stores.AccountStore,
		GuardianStore:     stores.GuardianStore,
		CamperStore:       stores.CamperStore,
		ContactStore:      stores.ContactStore,
		RegistrationStore: stores.RegistrationStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
