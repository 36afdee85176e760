package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/auth"
)

type createTransactionRequest struct {
	ClientID   uint    `json:"clientId"`
	ProductID  uint    `json:"productId"`
	OccurredAt string  `json:"occurredAt"`
	Details    Details `json:"details"`
}

// Handler exposes transaction routes, scoped to the authenticated agent.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Create handles POST /transactions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.ClientID == 0 || req.ProductID == 0 {
		http.Error(w, "clientId and productId are required", http.StatusBadRequest)
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			http.Error(w, "invalid occurredAt", http.StatusBadRequest)
			return
		}
		occurredAt = t
	}

	txn := Transaction{
		AgentID:    agentID,
		ClientID:   req.ClientID,
		ProductID:  req.ProductID,
		OccurredAt: occurredAt,
		Status:     StatusCompleted,
		Details:    req.Details,
	}
	if err := h.Repo.Create(&txn); err != nil {
		http.Error(w, "could not create transaction", http.StatusInternalServerError)
		return
	}

	created, err := h.Repo.FindByID(txn.ID)
	if err != nil {
		http.Error(w, "could not load transaction", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// List handles GET /transactions?product={id}; admins see every agent's rows.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agentID, isAdmin := auth.UserFromContext(r.Context())

	var productID uint
	if s := r.URL.Query().Get("product"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid product filter", http.StatusBadRequest)
			return
		}
		productID = uint(id)
	}

	var (
		list []Transaction
		err  error
	)
	if isAdmin {
		list, err = h.Repo.ListAll(productID)
	} else {
		list, err = h.Repo.ListByAgent(agentID, productID)
	}
	if err != nil {
		http.Error(w, "could not list transactions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /transactions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	txn, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// UpdateStatus handles PATCH /transactions/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	txn, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !ValidStatus(payload.Status) {
		http.Error(w, "unknown transaction status", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatus(txn.ID, payload.Status); err != nil {
		http.Error(w, "could not update status", http.StatusInternalServerError)
		return
	}
	txn.Status = payload.Status
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// Delete handles DELETE /transactions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	txn, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(txn); err != nil {
		http.Error(w, "could not delete transaction", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request) (*Transaction, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return nil, false
	}
	txn, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return nil, false
	}
	agentID, isAdmin := auth.UserFromContext(r.Context())
	if txn.AgentID != agentID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return txn, true
}
