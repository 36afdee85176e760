package agent

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/polisure/commission-api/internal/auth"
	"github.com/polisure/commission-api/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Handler bundles the DB handle and the repository.
type Handler struct {
	DB   *gorm.DB
	Repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repo: NewRepository(db)}
}

// Login issues a JWT for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	a, err := h.Repo.FindByLogin(req.Login)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(a.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateAccessToken(a.ID, a.IsAdmin)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":    token,
		"userId":   a.ID,
		"username": a.Username,
	})
}

// Register creates a new agent account (unauthenticated route).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if req.Password != req.Password2 {
		http.Error(w, "password fields didn't match", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	a := Agent{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}
	if err := h.Repo.Create(&a); err != nil {
		http.Error(w, "could not create agent", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(a)
}

// Profile returns the authenticated agent.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())
	a, err := h.Repo.FindByID(userID)
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// UpdateProfile updates mutable profile fields of the authenticated agent.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())
	a, err := h.Repo.FindByID(userID)
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	a.Email = payload.Email
	a.FirstName = payload.FirstName
	a.LastName = payload.LastName

	if err := h.Repo.Update(a); err != nil {
		http.Error(w, "could not update agent", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// ChangePassword verifies the old password and stores a new hash.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())
	a, err := h.Repo.FindByID(userID)
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !utils.CheckPassword(a.PasswordHash, req.OldPassword) {
		http.Error(w, "old password is not correct", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}
	a.PasswordHash = hash
	if err := h.Repo.Update(a); err != nil {
		http.Error(w, "could not update password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "password updated successfully"})
}

// List returns every agent (admin only; the router guards this).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "could not list agents", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(agents)
}

// Get returns one agent by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid agent id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "agent not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}
