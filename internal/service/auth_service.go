package service

import (
	"context"

	"github.com/Karab-o/CareLink/internal/domain"
	"github.com/Karab-o/CareLink/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest, ip, ua string) (*dto.AuthResponse, error)
	Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.AuthResponse, error)
	Profile(ctx context.Context, userID domain.UserID) (*dto.UserProfile, error)
}
