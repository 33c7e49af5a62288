package list_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/kamillakovacs/craftbeerspa/internal/api/handlers"
	"github.com/kamillakovacs/craftbeerspa/internal/service/reservations"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
//
// Without parameters it lists every upcoming reservation; an optional date
// parameter narrows the list to one day.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateKey := r.URL.Query().Get("date")

	var err error
	var resp interface{}
	if dateKey != "" {
		resp, err = h.service.ListOnDate(r.Context(), dateKey)
	} else {
		resp, err = h.service.ListUpcoming(r.Context(), time.Now())
	}
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
