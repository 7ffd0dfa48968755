package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRequest(r chi.Router, requestHandler *adaptor.RequestHandler, jwt *token.JWT, log *zap.Logger) {
	// All booking-request routes require authentication
	r.Route("/api/requests", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwt, log))

		// POST /api/requests - Submit a new booking request
		r.Post("/", requestHandler.Create)

		// GET /api/requests - List own requests, optional ?status= filter
		r.Get("/", requestHandler.ListMine)

		// GET /api/requests/notifications/unread - Unread notifications across requests
		r.Get("/notifications/unread", requestHandler.UnreadNotifications)

		// GET /api/requests/{id} - Own request with notification history
		r.Get("/{id}", requestHandler.GetByID)

		// PUT /api/requests/{id}/cancel - Cancel own request
		r.Put("/{id}/cancel", requestHandler.Cancel)

		// PUT /api/requests/{id}/notifications/read - Mark notifications read
		r.Put("/{id}/notifications/read", requestHandler.MarkNotificationsRead)
	})
}
