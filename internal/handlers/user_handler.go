package handlers

import (
	"encoding/json"
	"net/http"

	"ratehubBack/internal/models"
	"ratehubBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	user, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	user.Password = ""
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	user, tokens, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	user, err := h.Service.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	user.Password = ""
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if _, err := h.Service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "code sent"})
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if err := h.Service.ResetPassword(r.Context(), req); err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "password updated"})
}

// GetUserRatings returns the caller's rating history grouped by template.
func (h *UserHandler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	groups, err := h.Service.GetUserRatings(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(groups)
}
