package adaptor

import (
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/apperr"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Handler aggregates all HTTP handlers
type Handler struct {
	Auth      *AuthHandler
	Request   *RequestHandler
	Purchase  *PurchaseHandler
	Dashboard *DashboardHandler
	Admin     *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Request:   NewRequestHandler(service.Request, log),
		Purchase:  NewPurchaseHandler(service.Purchase, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
		Admin:     NewAdminHandler(service.Request, service.User, log),
	}
}

// callerIdentity pulls the authenticated identity set by the auth middleware.
func callerIdentity(w http.ResponseWriter, r *http.Request) (utils.Identity, bool) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return identity, ok
}

// respondError maps a service error to an HTTP response by its kind.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperr.KindOf(err)

	switch kind {
	case apperr.KindValidation, apperr.KindInvalidTransition:
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("kind", string(kind)))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperr.KindNotFound:
		log.Warn(operation+" target not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.KindUnauthorized:
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case apperr.KindForbidden:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperr.KindConflict:
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
