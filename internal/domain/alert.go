package domain

import "time"

type DeliveryStatus string

const (
	// StatusDeliveredLive means at least one of the contact's live connections
	// accepted the push during the dispatch pass.
	StatusDeliveredLive DeliveryStatus = "delivered-live"
	// StatusQueuedOffline means the contact could not be reached live and the
	// delivery row is retained for a later flush.
	StatusQueuedOffline DeliveryStatus = "queued-offline"
)

type DeliveryReason string

const (
	// ReasonUnregistered: the contact's email/phone did not resolve to any
	// registered user.
	ReasonUnregistered DeliveryReason = "unregistered"
	// ReasonOffline: the contact resolved to a registered user with no live
	// connection (or every push attempt failed).
	ReasonOffline DeliveryReason = "offline"
)

type Alert struct {
	ID        AlertID   `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID  UserID    `gorm:"type:uuid;not null;index:ix_alerts_sender" json:"senderId"`
	Message   string    `gorm:"type:text" json:"message"`
	Severity  string    `gorm:"type:text" json:"severity"`
	Location  string    `gorm:"type:text" json:"location"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Alert) TableName() string { return "alerts" }

// AlertDelivery records the outcome of one dispatch attempt for one trusted
// contact. Contact fields are snapshotted at dispatch time so later contact
// edits do not rewrite history. Status is written exactly once per attempt;
// a queued-offline row flips to delivered-live only when a later flush
// actually pushes it.
type AlertDelivery struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"-"`
	AlertID      AlertID        `gorm:"type:uuid;not null;index:ix_deliveries_alert" json:"alertId"`
	Position     int            `gorm:"not null" json:"-"`
	RecipientID  *UserID        `gorm:"type:uuid;index:ix_deliveries_recipient" json:"recipientId,omitempty"`
	ContactName  string         `gorm:"not null" json:"contactName"`
	ContactEmail string         `json:"contactEmail"`
	ContactPhone string         `json:"contactPhone"`
	Status       DeliveryStatus `gorm:"type:text;not null" json:"status"`
	Reason       DeliveryReason `gorm:"type:text" json:"reason,omitempty"`
	DeliveredAt  *time.Time     `gorm:"type:timestamptz" json:"deliveredAt,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"-"`
}

func (AlertDelivery) TableName() string { return "alert_deliveries" }
