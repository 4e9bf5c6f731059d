package settlement

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/expense"
	"github.com/chipinapp/chipin/pkg/middleware"
	"github.com/chipinapp/chipin/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Record)
	r.Get("/event/{eventId}", h.ListByEvent)
	r.Get("/event/{eventId}/suggestions", h.Suggestions)

	return r
}

// Record handles POST /settlements
// @Summary      Record a settlement payment
// @Description  Commit an accepted debt suggestion as a settlement expense through the validation gate
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body RecordSettlementRequest true "Settlement to record"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetParticipantID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing participant identity")
		return
	}

	var req RecordSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.service.Record(r.Context(), creatorID, &req)
	if err != nil {
		var vErr *expense.ValidationError
		if errors.As(err, &vErr) {
			response.BadRequest(w, vErr.Message)
			return
		}
		response.InternalError(w, "Failed to record settlement")
		return
	}

	resp := &SettlementResponse{
		ID:        created.Expense.ID,
		EventID:   created.Expense.EventID,
		From:      created.Expense.PaidBy,
		Amount:    created.Expense.Amount,
		Notes:     created.Expense.Notes,
		CreatedAt: created.Expense.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if created.Expense.ReceivedBy != nil {
		resp.To = *created.Expense.ReceivedBy
	}

	response.JSON(w, http.StatusCreated, resp)
}

// ListByEvent handles GET /settlements/event/{eventId}
// @Summary      List recorded settlements
// @Description  Paginated settlement history of an event
// @Tags         settlements
// @Produce      json
// @Param        eventId path string true "Event ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements/event/{eventId} [get]
func (h *Handler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	records, total, err := h.service.ListByEventID(r.Context(), eventID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	responses := make([]*SettlementResponse, len(records))
	for i, rec := range records {
		responses[i] = rec.ToResponse()
	}

	if perPage < 1 {
		perPage = 20
	}
	if page < 1 {
		page = 1
	}
	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, responses, meta)
}

// Suggestions handles GET /settlements/event/{eventId}/suggestions
// @Summary      Get settlement suggestions
// @Description  Payment plan that zeroes all balances of the event
// @Tags         settlements
// @Produce      json
// @Param        eventId path string true "Event ID"
// @Success      200 {object} response.APIResponse{data=[]SuggestionResponse}
// @Router       /settlements/event/{eventId}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "eventId"))
	if err != nil {
		response.BadRequest(w, "Invalid event ID")
		return
	}

	suggestions, err := h.service.Suggest(r.Context(), eventID)
	if err != nil {
		response.InternalError(w, "Failed to compute suggestions")
		return
	}

	responses := make([]*SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = &SuggestionResponse{
			From:     s.From,
			FromName: s.FromName,
			To:       s.To,
			ToName:   s.ToName,
			Amount:   s.Amount,
			Message:  suggestionMessage(s),
		}
	}

	response.JSON(w, http.StatusOK, responses)
}

func suggestionMessage(s DebtSuggestion) string {
	from := s.FromName
	if from == "" {
		from = s.From.String()
	}
	to := s.ToName
	if to == "" {
		to = s.To.String()
	}
	return fmt.Sprintf("%s pays %s %s", from, to, s.Amount.StringFixed(2))
}
