package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ratehubBack/internal/services"
)

type TemplateHandler struct {
	Service *services.TemplateService
}

func (h *TemplateHandler) GetTemplateByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid template id", http.StatusBadRequest)
		return
	}
	template, err := h.Service.GetTemplateByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(template)
}

// InvalidateTemplate drops the cached copy of a template after an
// administrative edit so the next read reloads it from the database.
func (h *TemplateHandler) InvalidateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid template id", http.StatusBadRequest)
		return
	}
	if err := h.Service.InvalidateTemplate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTemplatesForDropdown lists the published templates as id/name pairs for
// navigation menus.
func (h *TemplateHandler) GetTemplatesForDropdown(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.GetTemplatesForDropdown(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(options)
}
