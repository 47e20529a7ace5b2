package dto

import (
	"time"

	"github.com/quillbooks/invoicing_backend/internal/core/domain"
)

// ReminderResponse defines the data returned for a reminder.
type ReminderResponse struct {
	ReminderID       string                `json:"reminderID"`
	InvoiceID        string                `json:"invoiceID"`
	Type             domain.ReminderType   `json:"type"`
	ReminderCount    int                   `json:"reminderCount"`
	NextReminderDate time.Time             `json:"nextReminderDate"`
	Status           domain.ReminderStatus `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ToReminderResponse converts a domain.Reminder to ReminderResponse DTO
func ToReminderResponse(r *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ReminderID:       r.ReminderID,
		InvoiceID:        r.InvoiceID,
		Type:             r.Type,
		ReminderCount:    r.ReminderCount,
		NextReminderDate: r.NextReminderDate,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
}

// ListRemindersParams defines query parameters for listing reminders.
type ListRemindersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListRemindersResponse wraps the list of reminders.
type ListRemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
}

// SweepResultResponse summarises a reminder sweep run.
type SweepResultResponse struct {
	Examined         int `json:"examined"`
	RemindersCreated int `json:"remindersCreated"`
}
