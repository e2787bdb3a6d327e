package web

import (
	"errors"
	"net/http"

	"fastbreak/internal/application/orchestrators"
	"fastbreak/internal/domain/onboarding"
)

// welcomeEmailDeps builds the shared best-effort email dependencies.
func welcomeEmailDeps() orchestrators.WelcomeEmailDeps {
	return orchestrators.WelcomeEmailDeps{
		OutboxStore: stores.OutboxStore,
		Sender:      emailSender,
		ReplyTo:     emailReplyTo,
		GenerateID:  generateID,
		Now:         timeNow,
	}
}

// handleOnboardParent handles POST /api/onboarding/parent. The full
// wizard draft is submitted at once and re-validated server-side.
func handleOnboardParent(w http.ResponseWriter, r *http.Request) {
	var draft onboarding.Draft
	if err := strictDecode(r, &draft); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteOnboardParent(r.Context(), orchestrators.OnboardParentInput{
		Draft:     draft,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}, orchestrators.OnboardParentDeps{
		AccountStore:      stores.AccountStore,
		CamperStore:       stores.CamperStore,
		GuardianStore:     stores.GuardianStore,
		ContactStore:      stores.ContactStore,
		RegistrationStore: stores.RegistrationStore,
		AuditStore:        stores.AuditStore,
		Email:             welcomeEmailDeps(),
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			errorJSON(w, http.StatusConflict, err.Error())
			return
		}
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"accountId": id})
}

// handleOnboardCounselor handles POST /api/onboarding/counselor.
func handleOnboardCounselor(w http.ResponseWriter, r *http.Request) {
	var draft onboarding.Draft
	if err := strictDecode(r, &draft); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := orchestrators.ExecuteOnboardCounselor(r.Context(), orchestrators.OnboardCounselorInput{
		Draft:     draft,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}, orchestrators.OnboardCounselorDeps{
		AccountStore:      stores.AccountStore,
		ContactStore:      stores.ContactStore,
		RegistrationStore: stores.RegistrationStore,
		AvailabilityStore: stores.AvailabilityStore,
		ScheduleStore:     stores.ScheduleStore,
		AuditStore:        stores.AuditStore,
		Uploader:          photoUploader,
		Email:             welcomeEmailDeps(),
		GenerateID:        generateID,
		Now:               timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			errorJSON(w, http.StatusConflict, err.Error())
			return
		}
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"accountId": id})
}
