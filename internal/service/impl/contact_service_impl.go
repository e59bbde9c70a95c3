package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/store"
)

var ErrEmptyContactName = errors.New("contact name required")

type ContactServiceImpl struct {
	store *store.Store
}

func NewContactServiceImpl(st *store.Store) *ContactServiceImpl {
	return &ContactServiceImpl{store: st}
}

func (c *ContactServiceImpl) AddContact(ctx context.Context, userID domain.UserID, contact domain.TrustedContact) ([]domain.TrustedContact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(strings.ToLower(contact.Email))
	contact.Phone = strings.TrimSpace(contact.Phone)
	if contact.Name == "" {
		return nil, ErrEmptyContactName
	}

	var out []domain.TrustedContact
	err := c.store.WithTx(ctx, func(tx *store.Store) error {
		if err := c.ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Contacts().Append(ctx, userID, contact); err != nil {
			return err
		}
		var err error
		out, err = tx.Contacts().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("trusted contact added", "user_id", userID, "contacts", len(out))
	return out, nil
}

func (c *ContactServiceImpl) ListContacts(ctx context.Context, userID domain.UserID) ([]domain.TrustedContact, error) {
	if err := c.ensureUser(ctx, c.store, userID); err != nil {
		return nil, err
	}
	return c.store.Contacts().ListByUser(ctx, userID)
}

func (c *ContactServiceImpl) RemoveContact(ctx context.Context, userID domain.UserID, index int) ([]domain.TrustedContact, error) {
	var out []domain.TrustedContact
	err := c.store.WithTx(ctx, func(tx *store.Store) error {
		if err := c.ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := tx.Contacts().RemoveAt(ctx, userID, index); err != nil {
			return err
		}
		var err error
		out, err = tx.Contacts().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContactServiceImpl) ensureUser(ctx context.Context, st *store.Store, userID domain.UserID) error {
	if _, err := st.Users().GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
