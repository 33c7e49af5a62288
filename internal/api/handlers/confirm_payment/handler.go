package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/confirm_payment"
)

const (
	msgMissingPaymentID   = "paymentId is required"
	msgNotFound           = "reservation not found"
	msgCanceled           = "reservation is canceled"
	msgPaymentNotComplete = "payment not completed"
	msgGatewayUnavailable = "payment gateway is unavailable"
)

type Handler struct {
	usecase ConfirmPaymentUseCase
	metrics MetricsRecorder
	logger  Logger
}

func NewHandler(usecase ConfirmPaymentUseCase, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: metrics,
		logger:  logger,
	}
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// Handle GET /api/v1/payments/callback
//
// The gateway redirects here with the payment id in the query string; the
// same endpoint serves its server-to-server callback.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("paymentId")
	if paymentID == "" {
		h.logger.Warn("GET /payments/callback - Missing paymentId")
		handlers.RespondBadRequest(w, msgMissingPaymentID)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), &usecase.Request{
		PaymentID:     paymentID,
		TransactionID: r.URL.Query().Get("transactionId"),
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrReservationNotFound):
			h.logger.Warn("GET /payments/callback - Reservation not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrReservationCanceled):
			handlers.RespondConflict(w, msgCanceled)

		case errors.Is(err, usecase.ErrPaymentNotCompleted):
			handlers.RespondConflict(w, msgPaymentNotComplete)

		case errors.Is(err, usecase.ErrGateway):
			handlers.RespondBadGateway(w, msgGatewayUnavailable)

		default:
			h.logger.Error("GET /payments/callback - Failed to confirm payment: payment_id=%s, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncPaymentsConfirmed()
	handlers.RespondJSON(w, http.StatusOK, ConfirmPaymentResponse{
		PaymentID: resp.PaymentID,
		Status:    resp.Status,
	})
}
