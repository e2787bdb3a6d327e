package projections

import (
	"context"
	"log/slog"
	"time"

	"fastbreak/internal/domain/content"
)

// contentLoadTimeout bounds how long the public landing page waits on
// the database before serving built-in copy instead.
const contentLoadTimeout = 5 * time.Second

// SiteContentStore defines the content store interface for this projection.
type SiteContentStore interface {
	Get(ctx context.Context) (content.Document, error)
}

// GetSiteContentResult carries the query result.
type GetSiteContentResult struct {
	Document content.Document
	Fallback bool // true when defaults were served instead of stored copy
}

// GetSiteContentDeps holds dependencies for GetSiteContent.
type GetSiteContentDeps struct {
	ContentStore SiteContentStore
}

// QueryGetSiteContent loads the site content document. The public page
// always renders: any load failure or timeout degrades to the built-in
// defaults instead of an error.
// POST: Result always holds a valid document
func QueryGetSiteContent(ctx context.Context, deps GetSiteContentDeps) GetSiteContentResult {
	ctx, cancel := context.WithTimeout(ctx, contentLoadTimeout)
	defer cancel()

	doc, err := deps.ContentStore.Get(ctx)
	if err != nil {
		slog.Warn("content_fallback", "error", err)
		return GetSiteContentResult{Document: content.Defaults(), Fallback: true}
	}
	return GetSiteContentResult{Document: doc}
}
