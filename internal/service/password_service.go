package service

import "github.com/Karab-o/CareLink/internal/domain"

type PasswordService interface {
	Hash(password string) (*domain.PasswordCredential, error)
	Verify(password string, cred *domain.PasswordCredential) (rehashNeeded bool, ok bool)
}
