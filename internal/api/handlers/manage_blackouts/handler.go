package manage_blackouts

import (
	"context"
	"errors"
	"net/http"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	"github.com/kamillakovacs/craftbeerspa/internal/service/blackouts"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGet GET /api/v1/admin/blackouts
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetCalendar(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blackouts - Failed to load calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleBlock POST /api/v1/admin/blackouts
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.handleChange(w, r, "POST /admin/blackouts", h.service.BlockDate, h.service.BlockSlot)
}

// HandleUnblock DELETE /api/v1/admin/blackouts
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	h.handleChange(w, r, "DELETE /admin/blackouts", h.service.UnblockDate, h.service.UnblockSlot)
}

func (h *Handler) handleChange(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	dateOp func(ctx context.Context, dateKey string) error,
	slotOp func(ctx context.Context, dateKey string, hour int) error,
) {
	var req BlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var err error
	if req.Hour != nil {
		err = slotOp(r.Context(), req.Date, *req.Hour)
	} else {
		err = dateOp(r.Context(), req.Date)
	}
	if err != nil {
		switch {
		case errors.Is(err, blackouts.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("%s - Failed to update calendar: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
