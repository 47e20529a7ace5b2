package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/quillbooks/invoicing_backend/internal/apperrors"
	portssvc "github.com/quillbooks/invoicing_backend/internal/core/ports/services"
	"github.com/quillbooks/invoicing_backend/internal/dto"
	"github.com/quillbooks/invoicing_backend/internal/middleware"
)

// reminderHandler handles HTTP requests related to payment reminders.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

// newReminderHandler creates a new reminderHandler.
func newReminderHandler(rs portssvc.ReminderSvcFacade) *reminderHandler {
	return &reminderHandler{
		reminderService: rs,
	}
}

// registerReminderRoutes registers routes related to reminders.
func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade) {
	h := newReminderHandler(reminderService)

	// Sweeps walk every overdue candidate and attempt delivery for each; cap
	// how often one caller can trigger them.
	sweepRate, _ := limiter.NewRateFromFormatted("2-M")
	sweepLimiter := limiter.New(memory.NewStore(), sweepRate)
	sweepLimit := middleware.RateLimit(sweepLimiter)

	reminders := rg.Group("/reminders")
	{
		reminders.GET("", h.listReminders)
		reminders.POST("/send-overdue", sweepLimit, h.sendOverdue)
		reminders.POST("/send-weekly", sweepLimit, h.sendWeekly)
		reminders.PUT("/:id/cancel", h.cancelReminder)
	}
}

// sendOverdue godoc
// @Summary Run the overdue reminder sweep
// @Description Creates overdue reminders for unpaid invoices past their due date, honoring the per-invoice cooldown, and flips their status to overdue
// @Tags reminders
// @Produce  json
// @Success 200 {object} dto.SweepResultResponse
// @Failure 500 {object} map[string]string "Failed to run overdue sweep"
// @Security BearerAuth
// @Router /reminders/send-overdue [post]
func (h *reminderHandler) sendOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reminderService.SweepOverdue(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to run overdue sweep", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run overdue sweep"})
		return
	}

	logger.Info("Overdue sweep completed",
		slog.Int("examined", result.Examined),
		slog.Int("reminders_created", result.RemindersCreated),
	)
	c.JSON(http.StatusOK, result)
}

// sendWeekly godoc
// @Summary Run the weekly follow-up reminder sweep
// @Description Creates follow-up reminders for reminders due today whose invoices remain unpaid
// @Tags reminders
// @Produce  json
// @Success 200 {object} dto.SweepResultResponse
// @Failure 500 {object} map[string]string "Failed to run weekly sweep"
// @Security BearerAuth
// @Router /reminders/send-weekly [post]
func (h *reminderHandler) sendWeekly(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reminderService.SweepWeekly(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to run weekly sweep", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run weekly sweep"})
		return
	}

	logger.Info("Weekly sweep completed",
		slog.Int("examined", result.Examined),
		slog.Int("reminders_created", result.RemindersCreated),
	)
	c.JSON(http.StatusOK, result)
}

// listReminders godoc
// @Summary List reminders
// @Description Retrieves a paginated list of reminders, newest first
// @Tags reminders
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListRemindersResponse
// @Failure 500 {object} map[string]string "Failed to list reminders"
// @Security BearerAuth
// @Router /reminders [get]
func (h *reminderHandler) listReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRemindersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListReminders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list reminders from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reminders"})
		return
	}

	reminderResponses := make([]dto.ReminderResponse, len(reminders))
	for i, r := range reminders {
		reminderResponses[i] = dto.ToReminderResponse(&r)
	}

	c.JSON(http.StatusOK, dto.ListRemindersResponse{Reminders: reminderResponses})
}

// cancelReminder godoc
// @Summary Cancel a reminder
// @Description Sets a reminder's status to cancelled. The parent invoice is untouched.
// @Tags reminders
// @Produce  json
// @Param   id path string true "Reminder ID"
// @Success 200 {object} dto.ReminderResponse
// @Failure 404 {object} map[string]string "Reminder not found"
// @Failure 500 {object} map[string]string "Failed to cancel reminder"
// @Security BearerAuth
// @Router /reminders/{id}/cancel [put]
func (h *reminderHandler) cancelReminder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reminderID := c.Param("id")
	logger = logger.With(slog.String("reminder_id", reminderID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cancelledReminder, err := h.reminderService.CancelReminder(c.Request.Context(), reminderID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Reminder not found for cancellation")
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		} else {
			logger.Error("Failed to cancel reminder in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reminder"})
		}
		return
	}

	logger.Info("Reminder cancelled successfully")
	c.JSON(http.StatusOK, dto.ToReminderResponse(cancelledReminder))
}
