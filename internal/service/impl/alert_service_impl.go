package impl

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"
	"github.com/Karab-o/CareLink/internal/observability/metrics"
	"github.com/Karab-o/CareLink/internal/registry"
	"github.com/Karab-o/CareLink/internal/store"

	"github.com/google/uuid"
)

const flushBatchMax = 100

// AlertServiceImpl is the dispatch engine: it resolves a sender's trusted
// contacts against the user table, pushes to every live connection of each
// resolved contact, and queues the rest for a flush when they reconnect.
type AlertServiceImpl struct {
	store *store.Store
	reg   *registry.Registry
	now   func() time.Time
}

func NewAlertServiceImpl(st *store.Store, reg *registry.Registry) *AlertServiceImpl {
	return &AlertServiceImpl{store: st, reg: reg, now: time.Now}
}

func (a *AlertServiceImpl) Dispatch(ctx context.Context, senderID domain.UserID, r dto.AlertRequest) (*dto.AlertResult, error) {
	result := "success"
	defer func() {
		metrics.AlertsDispatchedTotal.WithLabelValues(result).Inc()
	}()

	sender, err := a.store.Users().GetByID(ctx, senderID)
	if err != nil {
		result = "failure"
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// Snapshot the contact list: edits made while this dispatch runs do not
	// affect it.
	contacts, err := a.store.Contacts().ListByUser(ctx, senderID)
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := a.now().UTC()
	alert := &domain.Alert{
		ID:        uuid.Must(uuid.NewV7()),
		SenderID:  senderID,
		Message:   r.Message,
		Severity:  r.Severity,
		Location:  r.Location,
		CreatedAt: now,
	}

	// Every contact starts queued-offline; resolution decides the reason.
	// Contacts are not required to be platform users, so a failed resolution
	// is a normal sub-case, distinct from "registered but disconnected".
	deliveries := make([]domain.AlertDelivery, 0, len(contacts))
	for i, c := range contacts {
		d := domain.AlertDelivery{
			AlertID:      alert.ID,
			Position:     i,
			ContactName:  c.Name,
			ContactEmail: c.Email,
			ContactPhone: c.Phone,
			Status:       domain.StatusQueuedOffline,
			Reason:       domain.ReasonUnregistered,
			CreatedAt:    now,
		}
		if recipient := a.resolveContact(ctx, c); recipient != nil {
			id := recipient.ID
			d.RecipientID = &id
			d.Reason = domain.ReasonOffline
		}
		deliveries = append(deliveries, d)
	}

	err = a.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.Alerts().Create(ctx, alert); err != nil {
			return err
		}
		return tx.Alerts().CreateDeliveries(ctx, deliveries)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	payload, err := json.Marshal(envelopeFor(alert, sender.Name))
	if err != nil {
		result = "failure"
		return nil, err
	}

	// Fan-out pass. Per-contact failures never abort the pass; a handle that
	// vanished mid-dispatch is just an unreachable handle.
	for i := range deliveries {
		d := &deliveries[i]
		if d.RecipientID == nil {
			metrics.AlertDeliveriesTotal.WithLabelValues(string(d.Status)).Inc()
			continue
		}
		if a.pushToUser(*d.RecipientID, payload) {
			at := a.now().UTC()
			d.Status = domain.StatusDeliveredLive
			d.Reason = ""
			d.DeliveredAt = &at
			if err := a.store.Alerts().UpdateDelivery(ctx, d); err != nil {
				slog.Error("persist delivery status", "alert_id", alert.ID, "recipient_id", d.RecipientID, "error", err)
			}
		}
		metrics.AlertDeliveriesTotal.WithLabelValues(string(d.Status)).Inc()
	}

	slog.Info("alert dispatched",
		"alert_id", alert.ID,
		"sender_id", senderID,
		"contacts", len(deliveries),
		"severity", alert.Severity,
	)
	return resultOf(alert, deliveries), nil
}

// resolveContact matches a contact's stored email, then phone, against the
// user table. A contact that is not a platform user resolves to nil.
func (a *AlertServiceImpl) resolveContact(ctx context.Context, c domain.TrustedContact) *domain.User {
	if c.Email != "" {
		if u, err := a.store.Users().GetByEmail(ctx, c.Email); err == nil {
			return u
		}
	}
	if c.Phone != "" {
		if u, err := a.store.Users().GetByPhone(ctx, c.Phone); err == nil {
			return u
		}
	}
	return nil
}

// pushToUser attempts every live connection of userID and reports whether at
// least one accepted the payload.
func (a *AlertServiceImpl) pushToUser(userID domain.UserID, payload []byte) bool {
	delivered := false
	for _, handle := range a.reg.ConnectionsFor(userID) {
		if err := a.reg.Push(handle, payload); err != nil {
			slog.Warn("push failed", "user_id", userID, "conn_id", handle, "error", err)
			continue
		}
		delivered = true
	}
	return delivered
}

func (a *AlertServiceImpl) History(ctx context.Context, senderID domain.UserID, limit int) ([]dto.AlertResult, error) {
	if _, err := a.store.Users().GetByID(ctx, senderID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	alerts, err := a.store.Alerts().ListBySender(ctx, senderID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResult, 0, len(alerts))
	for i := range alerts {
		deliveries, err := a.store.Alerts().DeliveriesForAlert(ctx, alerts[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resultOf(&alerts[i], deliveries))
	}
	return out, nil
}

// FlushQueued pushes queued-offline deliveries to a user that just came
// online, oldest first, and marks the ones that went through.
func (a *AlertServiceImpl) FlushQueued(ctx context.Context, userID domain.UserID) (int, error) {
	pending, err := a.store.Alerts().PendingForRecipient(ctx, userID, flushBatchMax)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	alerts := make(map[domain.AlertID][]byte, len(pending))
	flushed := make([]uint, 0, len(pending))
	for _, d := range pending {
		payload, ok := alerts[d.AlertID]
		if !ok {
			alert, err := a.store.Alerts().GetAlert(ctx, d.AlertID)
			if err != nil {
				slog.Error("load queued alert", "alert_id", d.AlertID, "error", err)
				continue
			}
			senderName := ""
			if sender, err := a.store.Users().GetByID(ctx, alert.SenderID); err == nil {
				senderName = sender.Name
			}
			payload, err = json.Marshal(envelopeFor(alert, senderName))
			if err != nil {
				continue
			}
			alerts[d.AlertID] = payload
		}
		if a.pushToUser(userID, payload) {
			flushed = append(flushed, d.ID)
		}
	}

	if len(flushed) > 0 {
		if err := a.store.Alerts().MarkDelivered(ctx, flushed, a.now().UTC()); err != nil {
			return 0, err
		}
		metrics.AlertsFlushedTotal.WithLabelValues().Add(float64(len(flushed)))
		slog.Info("queued alerts flushed", "user_id", userID, "count", len(flushed))
	}
	return len(flushed), nil
}

func envelopeFor(alert *domain.Alert, senderName string) dto.AlertEnvelope {
	return dto.AlertEnvelope{
		Type: "alert",
		Alert: dto.AlertPayload{
			ID:         alert.ID.String(),
			SenderID:   alert.SenderID.String(),
			SenderName: senderName,
			Message:    alert.Message,
			Severity:   alert.Severity,
			Location:   alert.Location,
			CreatedAt:  alert.CreatedAt,
		},
	}
}

func resultOf(alert *domain.Alert, deliveries []domain.AlertDelivery) *dto.AlertResult {
	views := make([]dto.DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		views = append(views, dto.DeliveryView{
			ContactName:  d.ContactName,
			ContactEmail: d.ContactEmail,
			ContactPhone: d.ContactPhone,
			Status:       string(d.Status),
			Reason:       string(d.Reason),
			DeliveredAt:  d.DeliveredAt,
		})
	}
	return &dto.AlertResult{
		AlertID:    alert.ID.String(),
		CreatedAt:  alert.CreatedAt,
		Deliveries: views,
	}
}
