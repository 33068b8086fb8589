package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/service"
	"github.com/huddleapp/huddle/internal/transport/http/middleware"
	"github.com/huddleapp/huddle/pkg/validator"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageService  *service.MessageService
	reactionService *service.ReactionService
	log             *zap.Logger
}

func NewMessageHandler(messageService *service.MessageService, reactionService *service.ReactionService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messageService: messageService, reactionService: reactionService, log: log}
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreateMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Body); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Create(r.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		case errors.Is(err, service.ErrBadMessageContext):
			writeError(w, http.StatusBadRequest, "INVALID_CONTEXT", "Provide exactly one of channel_id or conversation_id")
		case errors.Is(err, service.ErrChannelNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Parent message not found")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not part of this conversation")
		default:
			h.log.Error("create message", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// List pages messages for one context, picked by query parameter:
// channel_id, conversation_id, or parent_message_id.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	q := r.URL.Query()

	var before *uuid.UUID
	if s := q.Get("before"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid before cursor")
			return
		}
		before = &id
	}

	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "Invalid limit")
			return
		}
		limit = n
	}

	switch {
	case q.Get("channel_id") != "":
		channelID, err := uuid.Parse(q.Get("channel_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid channel ID")
			return
		}
		resp, err := h.messageService.ListChannel(r.Context(), userID, channelID, before, limit)
		if err != nil {
			h.log.Error("list channel messages", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		writeJSON(w, http.StatusOK, resp)

	case q.Get("conversation_id") != "":
		conversationID, err := uuid.Parse(q.Get("conversation_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
			return
		}
		resp, err := h.messageService.ListConversation(r.Context(), userID, conversationID, before, limit)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrConversationNotFound):
				writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
			case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotParticipant):
				writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not part of this conversation")
			default:
				h.log.Error("list conversation messages", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			}
			return
		}
		writeJSON(w, http.StatusOK, resp)

	case q.Get("parent_message_id") != "":
		parentID, err := uuid.Parse(q.Get("parent_message_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid parent message ID")
			return
		}
		replies, err := h.messageService.ListThread(r.Context(), userID, parentID)
		if err != nil {
			h.log.Error("list thread", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
			return
		}
		writeJSON(w, http.StatusOK, replies)

	default:
		writeError(w, http.StatusBadRequest, "INVALID_CONTEXT", "Provide channel_id, conversation_id, or parent_message_id")
	}
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	msg, err := h.messageService.GetByID(r.Context(), userID, messageID)
	if err != nil {
		h.log.Error("get message", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if msg == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Body); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.messageService.Update(r.Context(), userID, messageID, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotMessageAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the author can edit a message")
		default:
			h.log.Error("update message", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.messageService.Remove(r.Context(), userID, messageID); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotMessageAuthor):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the author can delete a message")
		default:
			h.log.Error("delete message", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleReaction adds the caller's reaction, or removes it when the same
// value is already present.
func (h *MessageHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	var input struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Value == "" {
		writeError(w, http.StatusBadRequest, "INVALID_VALUE", "Reaction value is required")
		return
	}

	rx, added, err := h.reactionService.Toggle(r.Context(), userID, messageID, input.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, service.ErrNotMember):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a member of this workspace")
		default:
			h.log.Error("toggle reaction", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"added":    added,
		"reaction": rx,
	})
}
