package store

import (
	"context"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"

	"gorm.io/gorm"
)

type AlertStore struct{ db *gorm.DB }

func (s *Store) Alerts() *AlertStore { return &AlertStore{db: s.DB} }

func (a *AlertStore) Create(ctx context.Context, alert *domain.Alert) error {
	return a.db.WithContext(ctx).Create(alert).Error
}

func (a *AlertStore) CreateDeliveries(ctx context.Context, deliveries []domain.AlertDelivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Create(&deliveries).Error
}

func (a *AlertStore) UpdateDelivery(ctx context.Context, d *domain.AlertDelivery) error {
	return a.db.WithContext(ctx).
		Model(&domain.AlertDelivery{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"recipient_id": d.RecipientID,
			"status":       d.Status,
			"reason":       d.Reason,
			"delivered_at": d.DeliveredAt,
		}).Error
}

func (a *AlertStore) GetAlert(ctx context.Context, id domain.AlertID) (*domain.Alert, error) {
	var alert domain.Alert
	if err := a.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (a *AlertStore) DeliveriesForAlert(ctx context.Context, alertID domain.AlertID) ([]domain.AlertDelivery, error) {
	var out []domain.AlertDelivery
	err := a.db.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("position asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AlertStore) ListBySender(ctx context.Context, senderID domain.UserID, limit int) ([]domain.Alert, error) {
	var alerts []domain.Alert
	tx := a.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// PendingForRecipient returns queued-offline deliveries addressed to a
// resolved registered user, oldest alert first. Used by the reconnect flush.
func (a *AlertStore) PendingForRecipient(ctx context.Context, recipientID domain.UserID, limit int) ([]domain.AlertDelivery, error) {
	var out []domain.AlertDelivery
	tx := a.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, domain.StatusQueuedOffline).
		Order("created_at asc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AlertStore) MarkDelivered(ctx context.Context, ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).
		Model(&domain.AlertDelivery{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":       domain.StatusDeliveredLive,
			"reason":       "",
			"delivered_at": at,
		}).Error
}
