package http

import (
	"net/http"

	"amenibook-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, total, err := h.notificationSvc.GetNotifications(r.Context(), userIDFrom(r),
		queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := pathID(r, "notificationID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.notificationSvc.MarkAsRead(r.Context(), userIDFrom(r), notificationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
