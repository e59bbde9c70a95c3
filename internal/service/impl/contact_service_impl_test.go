package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/store"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, st *store.Store, name, email, phone string) domain.UserID {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u.ID
}

func TestAddAndListContactsPreservesOrder(t *testing.T) {
	st := setupStore(t)
	svc := NewContactServiceImpl(st)
	ctx := context.Background()
	userID := seedUser(t, st, "Owner", "owner@x.com", "+250780000010")

	names := []string{"Mom", "Dad", "Neighbor"}
	for _, n := range names {
		if _, err := svc.AddContact(ctx, userID, domain.TrustedContact{Name: n, Relationship: "family"}); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}

	contacts, err := svc.ListContacts(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	for i, n := range names {
		if contacts[i].Name != n {
			t.Fatalf("position %d = %s, want %s", i, contacts[i].Name, n)
		}
	}
}

func TestAddContactUnknownUser(t *testing.T) {
	st := setupStore(t)
	svc := NewContactServiceImpl(st)

	if _, err := svc.AddContact(context.Background(), uuid.New(), domain.TrustedContact{Name: "X"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.ListContacts(context.Background(), uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRemoveContact(t *testing.T) {
	st := setupStore(t)
	svc := NewContactServiceImpl(st)
	ctx := context.Background()
	userID := seedUser(t, st, "Owner", "owner2@x.com", "+250780000011")

	for _, n := range []string{"A", "B", "C"} {
		if _, err := svc.AddContact(ctx, userID, domain.TrustedContact{Name: n}); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}

	remaining, err := svc.RemoveContact(ctx, userID, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(remaining) != 2 || remaining[0].Name != "A" || remaining[1].Name != "C" {
		t.Fatalf("unexpected remaining contacts: %+v", remaining)
	}

	// order survives later appends after a removal
	if _, err := svc.AddContact(ctx, userID, domain.TrustedContact{Name: "D"}); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
	contacts, err := svc.ListContacts(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"A", "C", "D"}
	for i, n := range want {
		if contacts[i].Name != n {
			t.Fatalf("position %d = %s, want %s", i, contacts[i].Name, n)
		}
	}
}

func TestRemoveContactOutOfRange(t *testing.T) {
	st := setupStore(t)
	svc := NewContactServiceImpl(st)
	ctx := context.Background()
	userID := seedUser(t, st, "Owner", "owner3@x.com", "+250780000012")

	if _, err := svc.AddContact(ctx, userID, domain.TrustedContact{Name: "Only"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, index := range []int{-1, 1, 99} {
		if _, err := svc.RemoveContact(ctx, userID, index); !errors.Is(err, domain.ErrContactIndexOutOfRange) {
			t.Fatalf("index %d: expected ErrContactIndexOutOfRange, got %v", index, err)
		}
	}
}
