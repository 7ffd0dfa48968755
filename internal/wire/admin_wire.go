package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, jwt *token.JWT, log *zap.Logger) {
	// Admin subtree requires authentication AND the admin role
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwt, log))
		r.Use(middleware.Admin(log))

		// ==================== REQUEST MANAGEMENT ====================

		// GET /api/admin/requests - All requests with filters and stats
		r.Get("/requests", adminHandler.ListRequests)

		// GET /api/admin/requests/{id} - Any request with notifications
		r.Get("/requests/{id}", adminHandler.GetRequest)

		// PUT /api/admin/requests/{id}/respond - Approve or reject
		r.Put("/requests/{id}/respond", adminHandler.Respond)

		// PUT /api/admin/requests/{id}/status - Direct status update
		r.Put("/requests/{id}/status", adminHandler.SetStatus)

		// DELETE /api/admin/requests/{id} - Remove a request
		r.Delete("/requests/{id}", adminHandler.DeleteRequest)

		// ==================== USER MANAGEMENT ====================

		// GET /api/admin/users - All accounts
		r.Get("/users", adminHandler.ListUsers)

		// POST /api/admin/users - Create an account
		r.Post("/users", adminHandler.CreateUser)

		// GET /api/admin/users/{id} - Single account
		r.Get("/users/{id}", adminHandler.GetUser)

		// PUT /api/admin/users/{id} - Update an account
		r.Put("/users/{id}", adminHandler.UpdateUser)

		// DELETE /api/admin/users/{id} - Remove an account (not your own)
		r.Delete("/users/{id}", adminHandler.DeleteUser)

		// GET /api/admin/logins - Login audit trail
		r.Get("/logins", adminHandler.LoginLogs)
	})
}
