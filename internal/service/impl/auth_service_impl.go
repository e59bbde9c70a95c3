package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"
	"github.com/Karab-o/CareLink/internal/netutil"
	"github.com/Karab-o/CareLink/internal/observability/metrics"
	obsmw "github.com/Karab-o/CareLink/internal/observability/middleware"
	"github.com/Karab-o/CareLink/internal/service"
	"github.com/Karab-o/CareLink/internal/store"

	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	store    *store.Store
	password service.PasswordService
	tokens   service.TokenService
}

func NewAuthServiceImpl(st *store.Store, password service.PasswordService, tokens service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{store: st, password: password, tokens: tokens}
}

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest, ip, ua string) (*dto.AuthResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Email == "" || r.Name == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}
	if len(r.Password) < 8 {
		result = "failure"
		return nil, ErrPasswordLength
	}

	var out *dto.AuthResponse

	// Single transaction: uniqueness check + user row + credential row. The
	// pre-check gives a typed conflict; the unique index on email closes the
	// race between concurrent signups.
	err := a.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Users().GetByEmail(ctx, r.Email); err == nil {
			return domain.ErrEmailAlreadyUsed
		} else if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		u := &domain.User{
			ID:        uuid.Must(uuid.NewV7()), // time-ordered ids
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}

		cred, err := a.password.Hash(r.Password)
		if err != nil {
			return err
		}
		cred.UserID = u.ID
		if err := tx.Credentials().Upsert(ctx, cred); err != nil {
			return err
		}

		token, expiresIn, err := a.tokens.Issue(u.ID)
		if err != nil {
			return err
		}
		out = &dto.AuthResponse{
			User:      profileOf(u),
			Token:     token,
			ExpiresIn: expiresIn,
		}
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("user registered",
		"user_id", out.User.ID,
		"ip", normalizeIP(ip),
		"ua", netutil.TruncateUserAgent(ua),
		"request_id", obsmw.RequestIDFromContext(ctx),
	)
	return out, nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.AuthResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}

	var out *dto.AuthResponse

	// WithTx throughout: a transparent rehash is a write.
	err := a.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByEmail(ctx, r.Email)
		if err != nil {
			return domain.ErrInvalidCredentials // don't leak which field failed
		}
		cred, err := tx.Credentials().GetByUserID(ctx, user.ID)
		if err != nil {
			return domain.ErrInvalidCredentials
		}

		rehashNeeded, ok := a.password.Verify(r.Password, cred)
		if !ok {
			return domain.ErrInvalidCredentials
		}
		if rehashNeeded {
			fresh, err := a.password.Hash(r.Password)
			if err != nil {
				return err
			}
			fresh.ID = cred.ID
			fresh.UserID = user.ID
			fresh.CreatedAt = cred.CreatedAt
			if err := tx.Credentials().Upsert(ctx, fresh); err != nil {
				return err
			}
		}

		token, expiresIn, err := a.tokens.Issue(user.ID)
		if err != nil {
			return err
		}
		out = &dto.AuthResponse{
			User:      profileOf(user),
			Token:     token,
			ExpiresIn: expiresIn,
		}
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("user logged in",
		"user_id", out.User.ID,
		"ip", normalizeIP(ip),
		"ua", netutil.TruncateUserAgent(ua),
		"request_id", obsmw.RequestIDFromContext(ctx),
	)
	return out, nil
}

func (a *AuthServiceImpl) Profile(ctx context.Context, userID domain.UserID) (*dto.UserProfile, error) {
	user, err := a.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	p := profileOf(user)
	return &p, nil
}

func profileOf(u *domain.User) dto.UserProfile {
	return dto.UserProfile{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func normalizeIP(ip string) string {
	if normalized, ok := netutil.NormalizeIP(ip); ok {
		return normalized
	}
	return strings.TrimSpace(ip)
}
