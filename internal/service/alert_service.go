package service

import (
	"context"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"
)

type AlertService interface {
	// Dispatch fans one alert out to the sender's trusted contacts. The only
	// fatal failure is an unknown sender; per-contact unreachability is a
	// status value in the result, never an error.
	Dispatch(ctx context.Context, senderID domain.UserID, r dto.AlertRequest) (*dto.AlertResult, error)

	// History lists the sender's past alerts with their per-contact outcomes.
	History(ctx context.Context, senderID domain.UserID, limit int) ([]dto.AlertResult, error)

	// FlushQueued pushes deliveries queued while userID was offline to its
	// now-live connections. Invoked by the transport on a fresh bind.
	FlushQueued(ctx context.Context, userID domain.UserID) (int, error)
}
