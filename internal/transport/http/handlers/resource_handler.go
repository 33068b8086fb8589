package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
	"github.com/huddleapp/huddle/pkg/validator"
	"go.uber.org/zap"
)

// maxUploadBytes caps multipart uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type ResourceHandler struct {
	resourceService *service.ResourceService
	log             *zap.Logger
}

func NewResourceHandler(resourceService *service.ResourceService, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, log: log}
}

// Upload accepts a multipart form with a "file" part plus name, description,
// and file_type fields.
func (h *ResourceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	name := r.FormValue("name")
	fileType := r.FormValue("file_type")
	if errs := validator.ValidateResource(name, fileType); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	var description *string
	if d := r.FormValue("description"); d != "" {
		description = &d
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "A file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", "Could not read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := h.resourceService.Upload(r.Context(), userID, workspaceID, service.UploadResourceInput{
		Name:        name,
		Description: description,
		FileType:    fileType,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		} else {
			h.log.Error("upload resource", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	resources, err := h.resourceService.List(r.Context(), userID, workspaceID)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		} else {
			h.log.Error("list resources", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	resourceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	res, err := h.resourceService.GetByID(r.Context(), userID, resourceID)
	if err != nil {
		h.log.Error("get resource", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	resourceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	if err := h.resourceService.Remove(r.Context(), userID, resourceID); err != nil {
		switch {
		case errors.Is(err, service.ErrResourceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		default:
			h.log.Error("delete resource", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
