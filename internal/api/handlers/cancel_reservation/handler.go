package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/cancel_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "reservation not found"
	msgAlreadyCanceled    = "reservation already canceled"
	msgCannotCancel       = "reservation cannot be canceled"
)

type Handler struct {
	usecase CancelReservationUseCase
	metrics MetricsRecorder
	logger  Logger
}

func NewHandler(usecase CancelReservationUseCase, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{paymentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	// An empty body means a plain customer cancel.
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{paymentId}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), req.ToUseCaseRequest(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{paymentId}/cancel - Not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrAlreadyCanceled):
			handlers.RespondConflict(w, msgAlreadyCanceled)

		case errors.Is(err, usecase.ErrNotCancelable):
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/{paymentId}/cancel - Failed to cancel: payment_id=%s, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncReservationsCanceled(resp.Canceled)
	handlers.RespondJSON(w, http.StatusOK, CancelReservationResponse{
		PaymentID: resp.PaymentID,
		Status:    resp.Status,
		Canceled:  resp.Canceled,
	})
}
