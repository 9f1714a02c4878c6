package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"ratehubBack/internal/models"
	"ratehubBack/internal/services"
)

type ItemHandler struct {
	Service *services.ItemService
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	item, err := h.Service.CreateItem(r.Context(), userID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}
	item, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func (h *ItemHandler) GetItemBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get(":slug")
	if slug == "" {
		http.Error(w, "Invalid slug", http.StatusBadRequest)
		return
	}
	item, err := h.Service.GetItemBySlug(r.Context(), slug)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(item)
}

// SearchItems filters one template's catalog by field values and returns a
// page of summaries together with pagination metadata.
func (h *ItemHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	result, err := h.Service.SearchItems(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *ItemHandler) RecommendByTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.Atoi(r.URL.Query().Get(":template_id"))
	if err != nil {
		http.Error(w, "Invalid template id", http.StatusBadRequest)
		return
	}
	items, err := h.Service.RecommendByTemplate(r.Context(), templateID)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(items)
}

// RecommendByGenre expects ?template_id=, ?field_id= and a comma separated
// ?values= list to intersect against the multiselect field.
func (h *ItemHandler) RecommendByGenre(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.Atoi(r.URL.Query().Get("template_id"))
	if err != nil {
		http.Error(w, "Invalid template id", http.StatusBadRequest)
		return
	}
	fieldID, err := strconv.Atoi(r.URL.Query().Get("field_id"))
	if err != nil {
		http.Error(w, "Invalid field id", http.StatusBadRequest)
		return
	}
	var values []string
	for _, v := range strings.Split(r.URL.Query().Get("values"), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	items, err := h.Service.RecommendByGenre(r.Context(), templateID, fieldID, values)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(items)
}
