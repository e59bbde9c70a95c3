package service

import (
	"context"

	"github.com/Karab-o/CareLink/internal/domain"
)

type ContactService interface {
	AddContact(ctx context.Context, userID domain.UserID, contact domain.TrustedContact) ([]domain.TrustedContact, error)
	ListContacts(ctx context.Context, userID domain.UserID) ([]domain.TrustedContact, error)
	RemoveContact(ctx context.Context, userID domain.UserID, index int) ([]domain.TrustedContact, error)
}
