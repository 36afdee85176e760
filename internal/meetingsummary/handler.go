package meetingsummary

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/auth"
)

type submitRequest struct {
	Content string `json:"content"`
}

// Handler exposes the ingestion endpoint and summary reads.
type Handler struct {
	Repo     *Repository
	Pipeline *Pipeline
}

func NewHandler(db *gorm.DB, pipeline *Pipeline) *Handler {
	return &Handler{Repo: NewRepository(db), Pipeline: pipeline}
}

// Submit handles POST /meeting-summaries. Malformed or unusable text is not
// an error: it produces a FAILED summary and a 201.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "meeting summary content is required", http.StatusBadRequest)
		return
	}

	summary, txn, err := h.Pipeline.Process(r.Context(), agentID, req.Content)
	if err != nil {
		http.Error(w, "could not process meeting summary", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{"summary": summary}
	if txn != nil {
		resp["transaction"] = txn
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// List handles GET /meeting-summaries for the authenticated agent.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())
	list, err := h.Repo.ListByAgent(agentID)
	if err != nil {
		http.Error(w, "could not list meeting summaries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /meeting-summaries/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid summary id", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "summary not found", http.StatusNotFound)
		return
	}
	agentID, isAdmin := auth.UserFromContext(r.Context())
	if s.AgentID != agentID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
