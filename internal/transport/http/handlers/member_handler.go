package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type MemberHandler struct {
	memberService *service.MemberService
	log           *zap.Logger
}

func NewMemberHandler(memberService *service.MemberService, log *zap.Logger) *MemberHandler {
	return &MemberHandler{memberService: memberService, log: log}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	members, err := h.memberService.List(r.Context(), userID, workspaceID)
	if err != nil {
		h.log.Error("list members", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	member, err := h.memberService.GetByID(r.Context(), userID, memberID)
	if err != nil {
		h.log.Error("get member", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// Current resolves the caller's own membership in a workspace.
func (h *MemberHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	member, err := h.memberService.Current(r.Context(), userID, workspaceID)
	if err != nil {
		h.log.Error("current member", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "You are not a member of this workspace")
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleMember {
		writeError(w, http.StatusBadRequest, "INVALID_ROLE", "Role must be admin or member")
		return
	}

	member, err := h.memberService.UpdateRole(r.Context(), userID, memberID, input.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can change roles")
		case errors.Is(err, service.ErrLastAdmin):
			writeError(w, http.StatusConflict, "LAST_ADMIN", "Cannot demote the only admin")
		default:
			h.log.Error("update member role", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	memberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	if err := h.memberService.Remove(r.Context(), userID, memberID); err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		case errors.Is(err, service.ErrAdminRemoval):
			writeError(w, http.StatusConflict, "ADMIN_REMOVAL", "Admin members cannot be removed")
		default:
			h.log.Error("remove member", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
