package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ratehubBack/internal/services"
)

type DataSourceHandler struct {
	Service *services.DataSourceService
}

func (h *DataSourceHandler) GetDataSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.Service.GetDataSources(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sources)
}

func (h *DataSourceHandler) GetDataSourceByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid data source id", http.StatusBadRequest)
		return
	}
	source, err := h.Service.GetDataSourceByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(source)
}
