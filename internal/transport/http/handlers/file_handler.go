package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/service"
	"go.uber.org/zap"
)

type FileHandler struct {
	resourceService *service.ResourceService
	log             *zap.Logger
}

func NewFileHandler(resourceService *service.ResourceService, log *zap.Logger) *FileHandler {
	return &FileHandler{resourceService: resourceService, log: log}
}

// Upload stores a raw blob and returns its id. Used for message image
// attachments, which reference the file id rather than a resource.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", "Could not read request body")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "Request body is empty")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f, err := h.resourceService.UploadFile(r.Context(), contentType, data)
	if err != nil {
		h.log.Error("upload file", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, f)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid file ID")
		return
	}

	f, err := h.resourceService.DownloadFile(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "File not found")
		} else {
			h.log.Error("download file", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}
