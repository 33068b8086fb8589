package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
	"github.com/huddleapp/huddle/pkg/validator"
	"go.uber.org/zap"
)

type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
	log              *zap.Logger
}

func NewWorkspaceHandler(workspaceService *service.WorkspaceService, log *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, log: log}
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateWorkspace(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.Create(r.Context(), userID, input.Name)
	if err != nil {
		h.log.Error("create workspace", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, ws)
}

func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("list workspaces", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, workspaces)
}

func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	ws, err := h.workspaceService.GetByID(r.Context(), userID, workspaceID)
	if err != nil {
		h.log.Error("get workspace", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if ws == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

// Info serves the pre-join view: name and whether the caller already belongs.
func (h *WorkspaceHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	info, err := h.workspaceService.GetInfo(r.Context(), userID, workspaceID)
	if err != nil {
		h.log.Error("workspace info", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if info == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateWorkspace(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ws, err := h.workspaceService.Update(r.Context(), userID, workspaceID, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can update it")
		default:
			h.log.Error("update workspace", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, ws)
}

func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	if err := h.workspaceService.Delete(r.Context(), userID, workspaceID); err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can delete it")
		default:
			h.log.Error("delete workspace", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	member, err := h.workspaceService.Join(r.Context(), userID, workspaceID, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrBadJoinCode):
			writeError(w, http.StatusForbidden, "INVALID_JOIN_CODE", "Join code does not match")
		case errors.Is(err, service.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "ALREADY_MEMBER", "You are already a member of this workspace")
		default:
			h.log.Error("join workspace", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *WorkspaceHandler) NewJoinCode(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	code, err := h.workspaceService.NewJoinCode(r.Context(), userID, workspaceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkspaceNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Workspace not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can rotate the join code")
		default:
			h.log.Error("rotate join code", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"join_code": code})
}
