// internal/wire/wire.go
package wire

import (
	"net/http"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/token"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, jwt *token.JWT, google token.Verifier, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, jwt, google, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, jwt, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, jwt *token.JWT, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, jwt, logger)
	wireRequest(r, handler.Request, jwt, logger)
	wirePurchase(r, handler.Purchase, jwt, logger)
	wireDashboard(r, handler.Dashboard, jwt, logger)
	wireAdmin(r, handler.Admin, jwt, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
