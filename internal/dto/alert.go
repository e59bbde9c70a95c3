package dto

import "time"

type AlertRequest struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Location string `json:"location,omitempty"`
}

type DeliveryView struct {
	ContactName  string     `json:"contactName"`
	ContactEmail string     `json:"contactEmail,omitempty"`
	ContactPhone string     `json:"contactPhone,omitempty"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason,omitempty"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`
}

// AlertResult reports one dispatch pass: per-contact outcomes in the sender's
// stored contact order.
type AlertResult struct {
	AlertID    string         `json:"alertId"`
	CreatedAt  time.Time      `json:"createdAt"`
	Deliveries []DeliveryView `json:"deliveries"`
}

type AlertListResponse struct {
	Alerts []AlertResult `json:"alerts"`
}

// AlertEnvelope is the frame pushed over a live connection.
type AlertEnvelope struct {
	Type  string       `json:"type"`
	Alert AlertPayload `json:"alert"`
}

type AlertPayload struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
