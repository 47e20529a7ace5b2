package domain

import "time"

// ReminderType distinguishes the first overdue notice from weekly follow-ups.
type ReminderType string

const (
	ReminderTypeOverdue ReminderType = "overdue"
	ReminderTypeWeekly  ReminderType = "weekly"
)

// ReminderStatus represents the delivery state of a reminder.
type ReminderStatus string

const (
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusFailed    ReminderStatus = "failed"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

// Reminder records that a payment notice was generated for an invoice.
// ReminderCount is monotonic per invoice.
type Reminder struct {
	ReminderID       string         `json:"reminderID"` // Primary key (UUID)
	InvoiceID        string         `json:"invoiceID"`
	Type             ReminderType   `json:"type"`
	ReminderCount    int            `json:"reminderCount"`
	NextReminderDate time.Time      `json:"nextReminderDate"`
	Status           ReminderStatus `json:"status"`
	AuditFields
}
