package get_available_slots

import (
	"net/http"
	"strconv"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	usecase "github.com/kamillakovacs/craftbeerspa/internal/usecase/get_available_slots"
)

const msgInvalidDays = "invalid days parameter"

type Handler struct {
	usecase AvailabilityUseCase
	logger  Logger
}

func NewHandler(usecase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &usecase.Request{}

	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			h.logger.Warn("GET /slots - Invalid days parameter: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = days
	}

	resp, err := h.usecase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /slots - Failed to build availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
