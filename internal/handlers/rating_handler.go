package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ratehubBack/internal/models"
	"ratehubBack/internal/services"
)

type RatingHandler struct {
	Service *services.RatingService
}

// RateItem creates or replaces the caller's rating on an item.
func (h *RatingHandler) RateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	rating, err := h.Service.RateItem(r.Context(), userID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rating)
}

func (h *RatingHandler) GetRatingsForItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.URL.Query().Get(":item_id"))
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}
	ratings, err := h.Service.GetRatingsForItem(r.Context(), itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(ratings)
}

// GetUserRating returns the caller's own rating for an item; the body is
// null when the item has not been rated yet.
func (h *RatingHandler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	itemID, err := strconv.Atoi(r.URL.Query().Get(":item_id"))
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}
	rating, err := h.Service.GetUserRating(r.Context(), userID, itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rating)
}
