package store

import (
	"context"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"

	"gorm.io/gorm"
)

type ContactStore struct{ db *gorm.DB }

func (s *Store) Contacts() *ContactStore { return &ContactStore{db: s.DB} }

// Append adds the contact at the end of the user's list. Positions only ever
// grow; removal leaves gaps so insertion order is preserved for display.
func (c *ContactStore) Append(ctx context.Context, userID domain.UserID, contact domain.TrustedContact) error {
	var next *int
	err := c.db.WithContext(ctx).
		Model(&domain.TrustedContact{}).
		Where("user_id = ?", userID).
		Select("MAX(position) + 1").
		Scan(&next).Error
	if err != nil {
		return err
	}
	contact.UserID = userID
	contact.Position = 0
	if next != nil {
		contact.Position = *next
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now().UTC()
	}
	return c.db.WithContext(ctx).Create(&contact).Error
}

func (c *ContactStore) ListByUser(ctx context.Context, userID domain.UserID) ([]domain.TrustedContact, error) {
	var contacts []domain.TrustedContact
	err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// RemoveAt deletes the contact at the given display index (zero-based over the
// ordered list, not the raw position value).
func (c *ContactStore) RemoveAt(ctx context.Context, userID domain.UserID, index int) error {
	contacts, err := c.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(contacts) {
		return domain.ErrContactIndexOutOfRange
	}
	return c.db.WithContext(ctx).Delete(&domain.TrustedContact{}, "id = ?", contacts[index].ID).Error
}
