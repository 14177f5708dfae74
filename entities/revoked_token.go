package entities

import (
	"time"
)

// RevokedToken marks a bearer token unusable before its natural expiry.
// TokenID is the token's jti claim (the raw token string when the claim
// is absent). Records past ExpiresAt are stale; pruning is left to the
// backing store.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID   string    `gorm:"index;not null" json:"token_id"`
	TokenKind string    `json:"token_kind"` // access, refresh
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt int64     `json:"expires_at"` // unix seconds, suitable for store-native TTL

	Timestamp
}
