// internal/workers/communication/send-list-notification/models.go
package sendlistnotification

import "college-match-workers/internal/models"

const (
	StatusSent     = "SENT"
	StatusFailed   = "FAILED"
	StatusDisabled = "DISABLED"
)

type Input struct {
	RecipientEmail      string                         `json:"recipientEmail"`
	RecipientPhone      string                         `json:"recipientPhone,omitempty"`
	StudentName         string                         `json:"studentName,omitempty"`
	RecommendationRunID string                         `json:"recommendationRunId"`
	Recommendations     []models.RecommendationSummary `json:"recommendations"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"sentAt"`
}
