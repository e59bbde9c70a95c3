package service

import "github.com/Karab-o/CareLink/internal/domain"

// TokenService is the credential gate: it issues and verifies the opaque
// bearer tokens that authenticate both HTTP calls and the websocket
// handshake. It is stateless beyond its signing secret, so a token cannot be
// revoked before its expiry; that is a documented limitation, not a bug.
type TokenService interface {
	Issue(userID domain.UserID) (token string, expiresIn int64, err error)
	Verify(token string) (domain.UserID, error)
}
