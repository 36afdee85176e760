package commission

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/agreement"
	"github.com/polisure/commission-api/internal/auth"
	"github.com/polisure/commission-api/internal/notification"
	"github.com/polisure/commission-api/internal/transaction"
)

// Handler exposes the commission evaluation endpoint and the read side of
// persisted commissions.
type Handler struct {
	Repo         *Repository
	Transactions *transaction.Repository
	Evaluator    *Evaluator
	Notifier     *notification.Notifier
}

func NewHandler(db *gorm.DB, notifier *notification.Notifier, logger *zap.Logger) *Handler {
	matcher := RepositoryMatcher{Agreements: agreement.NewRepository(db)}
	return &Handler{
		Repo:         NewRepository(db),
		Transactions: transaction.NewRepository(db),
		Evaluator:    NewEvaluator(db, matcher, logger),
		Notifier:     notifier,
	}
}

// Calculate handles POST /transactions/{id}/calculate-commission: evaluates
// the transaction against the agent's structures and persists the resulting
// commission lines.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	txn, err := h.Transactions.FindByID(uint(id))
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}

	agentID, isAdmin := auth.UserFromContext(r.Context())
	if txn.AgentID != agentID && !isAdmin {
		http.Error(w, "you don't have permission to calculate commission for this transaction", http.StatusForbidden)
		return
	}

	lines, err := h.Evaluator.Evaluate(txn, time.Now())
	if err != nil {
		http.Error(w, "could not calculate commission", http.StatusInternalServerError)
		return
	}

	if h.Notifier != nil && len(lines) > 0 {
		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Amount)
		}
		go h.Notifier.CommissionsEvaluated(txn.ID, len(lines), total)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"commissions": lines})
}

// ListByTransaction handles GET /transactions/{id}/commissions.
func (h *Handler) ListByTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	txn, err := h.Transactions.FindByID(uint(id))
	if err != nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	agentID, isAdmin := auth.UserFromContext(r.Context())
	if txn.AgentID != agentID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	list, err := h.Repo.FindByTransaction(txn.ID)
	if err != nil {
		http.Error(w, "could not list commissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListMine handles GET /commissions?status= for the authenticated agent.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	agentID, _ := auth.UserFromContext(r.Context())

	list, err := h.Repo.ListByAgent(agentID)
	if err != nil {
		http.Error(w, "could not list commissions", http.StatusInternalServerError)
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := list[:0]
		for _, c := range list {
			if c.Status == status {
				filtered = append(filtered, c)
			}
		}
		list = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// UpdateStatus handles PATCH /commissions/{id}/status (e.g. mark PAID).
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid commission id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if payload.Status != StatusPending && payload.Status != StatusPaid {
		http.Error(w, "unknown commission status", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatus(uint(id), payload.Status); err != nil {
		http.Error(w, "could not update commission", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
