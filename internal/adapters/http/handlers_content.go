package web

import (
	"net/http"

	"fastbreak/internal/application/orchestrators"
	"fastbreak/internal/application/projections"
	contentDomain "fastbreak/internal/domain/content"
)

// contentResponse is the public shape of the site content document.
// Markdown fields are rendered to HTML at the edge.
type contentResponse struct {
	HeroTitle       string                  `json:"heroTitle"`
	HeroSubtitle    string                  `json:"heroSubtitle"`
	ProgramBlurbHTML string                 `json:"programBlurbHtml"`
	SessionInfoHTML string                  `json:"sessionInfoHtml"`
	MorningTime     string                  `json:"morningTime"`
	AfternoonTime   string                  `json:"afternoonTime"`
	PriceFullDay    string                  `json:"priceFullDay"`
	PriceHalfDay    string                  `json:"priceHalfDay"`
	ContactEmail    string                  `json:"contactEmail"`
	ContactPhone    string                  `json:"contactPhone"`
	FAQ             []contentDomain.FAQEntry `json:"faq"`
	Fallback        bool                    `json:"fallback"`
}

// handleGetContent handles GET /api/content. Public: the landing page
// always renders, falling back to defaults on storage trouble.
func handleGetContent(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetSiteContent(r.Context(), projections.GetSiteContentDeps{
		ContentStore: stores.ContentStore,
	})
	doc := res.Document
	writeJSON(w, http.StatusOK, contentResponse{
		HeroTitle:        doc.HeroTitle,
		HeroSubtitle:     doc.HeroSubtitle,
		ProgramBlurbHTML: renderMarkdown(doc.ProgramBlurb),
		SessionInfoHTML:  renderMarkdown(doc.SessionInfo),
		MorningTime:      doc.MorningTime,
		AfternoonTime:    doc.AfternoonTime,
		PriceFullDay:     doc.PriceFullDay,
		PriceHalfDay:     doc.PriceHalfDay,
		ContactEmail:     doc.ContactEmail,
		ContactPhone:     doc.ContactPhone,
		FAQ:              doc.FAQ,
		Fallback:         res.Fallback,
	})
}

// handleGetAdminContent handles GET /api/admin/content, returning the
// raw editable document rather than rendered HTML.
func handleGetAdminContent(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetSiteContent(r.Context(), projections.GetSiteContentDeps{
		ContentStore: stores.ContentStore,
	})
	writeJSON(w, http.StatusOK, res.Document)
}

// handleUpdateContent handles PUT /api/admin/content.
func handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var doc contentDomain.Document
	if err := strictDecode(r, &doc); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := orchestrators.ExecuteUpdateContent(r.Context(), orchestrators.UpdateContentInput{
		Document:   doc,
		ActorID:    sess.AccountID,
		ActorEmail: sess.Email,
		ActorRole:  sess.Role,
	}, orchestrators.UpdateContentDeps{
		ContentStore: stores.ContentStore,
		AuditStore:   stores.AuditStore,
		Now:          timeNow,
	})
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
