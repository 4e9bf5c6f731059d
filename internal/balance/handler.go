package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chipinapp/chipin/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/event/{eventId}", h.GetByEvent)

	return r
}

// GetByEvent handles GET /balances/event/{eventId}
// @Summary      Get event balances
// @Description  Per-participant paid/owed/net table recomputed from the full expense history
// @Tags         balances
// @Produce      json
// @Param        eventId path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /balances/event/{eventId} [get]
func (h *Handler) GetByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	balances, err := h.service.BalancesSorted(r.Context(), eventID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	responses := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}
