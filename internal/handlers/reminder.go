package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type ReminderHandler struct {
	log             *logger.Logger
	reminderService services.ReminderService
}

func NewReminderHandler(log *logger.Logger, reminderService services.ReminderService) *ReminderHandler {
	return &ReminderHandler{log: log.With("handler", "ReminderHandler"), reminderService: reminderService}
}

// SweepNow runs the same pass the hourly schedule runs.
func (rh *ReminderHandler) SweepNow(c *gin.Context) {
	created, err := rh.reminderService.Sweep(c.Request.Context(), time.Now().UTC())
	if err != nil {
		rh.log.Error("Reminder sweep failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"notificationsCreated": created,
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	})
}
