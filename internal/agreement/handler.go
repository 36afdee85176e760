package agreement

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/auth"
)

// Handler exposes agreement routes. Listing and mutation are scoped to the
// authenticated agent; admins may read any agreement.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Create handles POST /agreements with the nested payload (company by name,
// commission structures with payment terms).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())

	var dto AgreementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	start, end, err := dto.Validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ag, err := h.Repo.Create(agentID, &dto, start, end)
	if err != nil {
		http.Error(w, "could not create agreement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ag)
}

// List handles GET /agreements?company={id} for the authenticated agent.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())

	var companyID uint
	if s := r.URL.Query().Get("company"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid company filter", http.StatusBadRequest)
			return
		}
		companyID = uint(id)
	}

	list, err := h.Repo.ListByAgent(agentID, companyID)
	if err != nil {
		http.Error(w, "could not list agreements", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /agreements/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ag, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ag)
}

// Update handles PUT /agreements/{id}: full replace of the structure set.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ag, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var dto AgreementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	start, end, err := dto.Validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Repo.ReplaceStructures(ag, &dto, start, end)
	if err != nil {
		http.Error(w, "could not update agreement", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /agreements/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ag, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(ag); err != nil {
		http.Error(w, "could not delete agreement", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadOwned fetches the agreement from the path id and enforces ownership.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*Agreement, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid agreement id", http.StatusBadRequest)
		return nil, false
	}
	ag, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "agreement not found", http.StatusNotFound)
		return nil, false
	}
	agentID, isAdmin := auth.UserFromContext(r.Context())
	if ag.AgentID != agentID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return ag, true
}
