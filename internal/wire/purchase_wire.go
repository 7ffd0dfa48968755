package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePurchase(r chi.Router, purchaseHandler *adaptor.PurchaseHandler, jwt *token.JWT, log *zap.Logger) {
	r.Route("/api/purchases", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwt, log))

		// GET /api/purchases/pending - Requests awaiting payment
		r.Get("/pending", purchaseHandler.PendingPayments)

		// POST /api/purchases/initiate - Open a payment session
		r.Post("/initiate", purchaseHandler.Initiate)

		// POST /api/purchases/confirm - Confirm a payment
		r.Post("/confirm", purchaseHandler.Confirm)

		// POST /api/purchases/cancel - Abandon a payment attempt
		r.Post("/cancel", purchaseHandler.CancelPayment)

		// GET /api/purchases/history - Settled purchases
		r.Get("/history", purchaseHandler.History)

		// GET /api/purchases/{id} - Single purchase
		r.Get("/{id}", purchaseHandler.GetPurchase)
	})
}
