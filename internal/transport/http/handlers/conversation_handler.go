package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
	"go.uber.org/zap"
)

type ConversationHandler struct {
	conversationService *service.ConversationService
	log                 *zap.Logger
}

func NewConversationHandler(conversationService *service.ConversationService, log *zap.Logger) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService, log: log}
}

// CreateOrGet returns the one conversation between the caller and another
// member, creating it on first use.
func (h *ConversationHandler) CreateOrGet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input struct {
		MemberID string `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	otherMemberID, err := uuid.Parse(input.MemberID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid member ID")
		return
	}

	conv, err := h.conversationService.CreateOrGet(r.Context(), userID, workspaceID, otherMemberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Member not found")
		default:
			h.log.Error("create conversation", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, conv)
}
