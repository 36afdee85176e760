package client

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler exposes CRUD routes for clients.
type Handler struct {
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var c Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if c.DisplayName == "" {
		http.Error(w, "displayName is required", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "could not create client", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "could not list clients", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	var payload Client
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	c.FirstName = payload.FirstName
	c.LastName = payload.LastName
	c.DisplayName = payload.DisplayName
	c.PhoneNumber = payload.PhoneNumber
	c.Email = payload.Email

	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "could not update client", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(c); err != nil {
		http.Error(w, "could not delete client", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
