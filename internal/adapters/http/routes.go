package web

import (
	"net/http"

	"fastbreak/internal/adapters/http/middleware"
)

// requireRole wraps a handler func with a role check.
func requireRole(h http.HandlerFunc, roles ...string) http.Handler {
	return middleware.RequireRole(roles...)(h)
}

// registerRoutes wires every API route onto the mux. Method-prefixed
// patterns reject other verbs with 405 automatically.
func registerRoutes(mux *http.ServeMux) {
	// Public surface.
	mux.HandleFunc("GET /api/content", handleGetContent)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("GET /api/me", handleMe)
	mux.HandleFunc("POST /api/onboarding/parent", handleOnboardParent)
	mux.HandleFunc("POST /api/onboarding/counselor", handleOnboardCounselor)

	// Counselor calendar.
	mux.Handle("GET /api/availability", requireRole(handleGetAvailability, "counselor", "admin"))
	mux.Handle("POST /api/availability/toggle", requireRole(handleToggleAvailability, "counselor", "admin"))
	mux.Handle("POST /api/availability/month", requireRole(handleMonthAvailability, "counselor", "admin"))

	// Parent dashboard.
	mux.Handle("GET /api/home", requireRole(handleParentHome, "parent"))

	// Admin boards.
	mux.Handle("GET /api/schedule", requireRole(handleGetSchedule, "admin"))
	mux.Handle("GET /api/assignments", requireRole(handleGetAssignments, "admin"))
	mux.Handle("POST /api/assignments", requireRole(handleSaveAssignments, "admin"))

	// Admin account management.
	mux.Handle("DELETE /api/counselors/{id}", requireRole(handleDeleteCounselor, "admin"))
	mux.Handle("DELETE /api/campers/{id}", requireRole(handleDeleteCamper, "admin"))
	mux.Handle("DELETE /api/parents/{id}", requireRole(handleDeleteParent, "admin"))

	// Admin content and operations.
	mux.Handle("GET /api/admin/content", requireRole(handleGetAdminContent, "admin"))
	mux.Handle("PUT /api/admin/content", requireRole(handleUpdateContent, "admin"))
	mux.Handle("GET /api/admin/accounts", requireRole(handleListAccounts, "admin"))
	mux.Handle("GET /api/audit", requireRole(handleGetAudit, "admin"))
	mux.Handle("GET /api/admin/outbox", requireRole(handleGetOutbox, "admin"))
}
