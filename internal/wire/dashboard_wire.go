package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, jwt *token.JWT, log *zap.Logger) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwt, log))

		// GET /api/dashboard/overview - Stats, recent activity, upcoming trips
		r.Get("/overview", dashboardHandler.Overview)

		// GET /api/dashboard/bookings - Confirmed bookings
		r.Get("/bookings", dashboardHandler.Bookings)

		// GET /api/dashboard/pending-requests - Requests still in flight
		r.Get("/pending-requests", dashboardHandler.PendingRequests)

		// GET /api/dashboard/profile - Profile with booking stats
		r.Get("/profile", dashboardHandler.Profile)
	})
}
