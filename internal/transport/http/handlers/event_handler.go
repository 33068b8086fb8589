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

type EventHandler struct {
	eventService *service.EventService
	log          *zap.Logger
}

func NewEventHandler(eventService *service.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{eventService: eventService, log: log}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	var input service.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateEvent(input.Title, input.Content, input.Deadline); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ev, err := h.eventService.Create(r.Context(), userID, workspaceID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can create events")
		default:
			h.log.Error("create event", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	workspaceID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid workspace ID")
		return
	}

	events, err := h.eventService.List(r.Context(), userID, workspaceID)
	if err != nil {
		h.log.Error("list events", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	ev, err := h.eventService.GetByID(r.Context(), userID, eventID)
	if err != nil {
		h.log.Error("get event", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	var input service.UpdateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	ev, err := h.eventService.Update(r.Context(), userID, eventID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadEventStatus):
			writeError(w, http.StatusBadRequest, "INVALID_STATUS", "Status must be 'pending' or 'expired'")
		case errors.Is(err, service.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Event not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can update events")
		default:
			h.log.Error("update event", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid event ID")
		return
	}

	if err := h.eventService.Remove(r.Context(), userID, eventID); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Event not found")
		case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotAdmin):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Only workspace admins can delete events")
		default:
			h.log.Error("delete event", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
