package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type AlertID = uuid.UUID
type ConnectionID = uuid.UUID
type CredentialID = uuid.UUID
