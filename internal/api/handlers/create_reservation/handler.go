package create_reservation

import (
	"errors"
	"net/http"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDateNotBookable    = "date is not bookable"
	msgSlotTaken          = "slot is no longer available"
	msgGatewayUnavailable = "payment gateway is unavailable"
)

type Handler struct {
	usecase CreateReservationUseCase
	metrics MetricsRecorder
	logger  Logger
}

func NewHandler(usecase CreateReservationUseCase, metrics MetricsRecorder, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.usecase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, usecase.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, usecase.ErrSlotConflict):
			h.metrics.IncSlotConflicts()
			h.logger.Warn("POST /reservations - Slot conflict: date=%s hour=%d", req.Date, req.Hour)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, usecase.ErrGateway):
			handlers.RespondBadGateway(w, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncReservationsPrepared()
	handlers.RespondJSON(w, http.StatusCreated, CreateReservationResponse{
		PaymentID:     resp.PaymentID,
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.RedirectURL,
		Status:        resp.Status,
	})
}
