package handlers

import (
	"encoding/json"
	"net/http"

	"ratehubBack/utils"
)

type UploadHandler struct {
	Storage *utils.StorageManager
}

// PresignUpload hands the client a short-lived PUT URL for direct upload and
// the public URL to store in an img/url field value afterwards.
func (h *UploadHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserIDFromContext(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Folder      string `json:"folder"`
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if req.FileName == "" {
		http.Error(w, "file_name is required", http.StatusBadRequest)
		return
	}
	if req.Folder == "" {
		req.Folder = "uploads"
	}

	uploadURL, fileURL, err := h.Storage.PresignedPutURL(req.Folder, req.FileName, req.ContentType)
	if err != nil {
		http.Error(w, "Failed to presign upload", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{
		"upload_url": uploadURL,
		"file_url":   fileURL,
	})
}
