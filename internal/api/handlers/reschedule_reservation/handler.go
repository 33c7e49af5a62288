package reschedule_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDateNotBookable    = "date is not bookable"
	msgNotFound           = "reservation not found"
	msgCannotReschedule   = "reservation cannot be rescheduled"
	msgSlotTaken          = "slot is not available"
)

type Handler struct {
	usecase RescheduleReservationUseCase
	metrics MetricsRecorder
	logger  Logger
}

func NewHandler(usecase RescheduleReservationUseCase, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{paymentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{paymentId}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), req.ToUseCaseRequest(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, usecase.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{paymentId}/reschedule - Not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, usecase.ErrNotReschedulable):
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, usecase.ErrSlotConflict):
			h.metrics.IncSlotConflicts()
			h.logger.Warn("PATCH /reservations/{paymentId}/reschedule - Slot conflict: payment_id=%s, date=%s hour=%d",
				paymentID, req.Date, req.Hour)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /reservations/{paymentId}/reschedule - Failed to reschedule: payment_id=%s, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncReservationsRescheduled()
	handlers.RespondJSON(w, http.StatusOK, RescheduleReservationResponse{
		PaymentID:    resp.PaymentID,
		Date:         resp.Date,
		Hour:         resp.Hour,
		PreviousDate: resp.PreviousDate,
		PreviousHour: resp.PreviousHour,
	})
}
