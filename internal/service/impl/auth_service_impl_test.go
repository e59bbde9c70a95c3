package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"

	"github.com/google/uuid"
)

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := testAuthStack(t)
	ctx := context.Background()

	res, err := auth.Register(ctx, dto.RegisterRequest{
		Name:     "Amina",
		Email:    "Amina@Example.com",
		Phone:    "+250780000001",
		Password: "a strong passphrase",
	}, "203.0.113.9:4242", "test-agent")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Email != "amina@example.com" {
		t.Fatalf("email not normalized: %s", res.User.Email)
	}
	if res.Token == "" || res.ExpiresIn <= 0 {
		t.Fatalf("missing token in response: %+v", res)
	}

	login, err := auth.Login(ctx, dto.LoginRequest{
		Email:    "amina@example.com",
		Password: "a strong passphrase",
	}, "203.0.113.9", "test-agent")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Fatalf("login resolved wrong user: %s vs %s", login.User.ID, res.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _ := testAuthStack(t)
	ctx := context.Background()

	req := dto.RegisterRequest{
		Name:     "First",
		Email:    "a@x.com",
		Phone:    "+250780000002",
		Password: "first password!",
	}
	first, err := auth.Register(ctx, req, "", "")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	req.Name = "Second"
	req.Password = "second password!"
	if _, err := auth.Register(ctx, req, "", ""); !errors.Is(err, domain.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}

	// the original user must survive untouched
	login, err := auth.Login(ctx, dto.LoginRequest{Email: "a@x.com", Password: "first password!"}, "", "")
	if err != nil {
		t.Fatalf("login after duplicate attempt: %v", err)
	}
	if login.User.ID != first.User.ID || login.User.Name != "First" {
		t.Fatalf("existing user overwritten: %+v", login.User)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := testAuthStack(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, dto.RegisterRequest{
		Name:     "Eve",
		Email:    "eve@x.com",
		Phone:    "+250780000003",
		Password: "the real password",
	}, "", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(ctx, dto.LoginRequest{Email: "eve@x.com", Password: "guess"}, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(ctx, dto.LoginRequest{Email: "nobody@x.com", Password: "guess"}, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email should look identical, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := testAuthStack(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, dto.RegisterRequest{Email: "x@x.com", Password: "long enough pw"}, "", ""); !errors.Is(err, ErrEmptyCredential) {
		t.Fatalf("missing name: got %v", err)
	}
	if _, err := auth.Register(ctx, dto.RegisterRequest{Name: "N", Email: "x@x.com", Password: "short"}, "", ""); !errors.Is(err, ErrPasswordLength) {
		t.Fatalf("short password: got %v", err)
	}
}

func TestProfile(t *testing.T) {
	auth, _ := testAuthStack(t)
	ctx := context.Background()

	res, err := auth.Register(ctx, dto.RegisterRequest{
		Name:     "Pat",
		Email:    "pat@x.com",
		Phone:    "+250780000004",
		Password: "another passphrase",
	}, "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	id := uuid.MustParse(res.User.ID)
	profile, err := auth.Profile(ctx, id)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Email != "pat@x.com" || profile.Name != "Pat" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := auth.Profile(ctx, uuid.New()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
