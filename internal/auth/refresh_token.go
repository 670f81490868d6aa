package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"salescrm/internal/model"
)

var ErrInvalidFingerprint = errors.New("invalid fingerprint for refresh token provided")
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// RefreshTokenIssuer issues refresh tokens with a configured lifetime
type RefreshTokenIssuer struct {
	maxCount          int
	timeToLiveSeconds int
}

// NewRefreshTokenIssuer builds new RefreshTokenIssuer
func NewRefreshTokenIssuer(maxCount int, ttl time.Duration) *RefreshTokenIssuer {
	return &RefreshTokenIssuer{
		maxCount:          maxCount,
		timeToLiveSeconds: int(ttl.Seconds()),
	}
}

// Sign issues a new refresh token bound to the user and client fingerprint
func (r *RefreshTokenIssuer) Sign(userID string, fingerprint string, at time.Time) *model.RefreshToken {
	return &model.RefreshToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		ExpiresIn:   r.timeToLiveSeconds,
		CreatedAt:   at,
	}
}

// TokensMaxCount is how many refresh tokens a single user may hold
func (r *RefreshTokenIssuer) TokensMaxCount() int {
	return r.maxCount
}

// VerifyRefreshToken checks fingerprint match and expiry
func VerifyRefreshToken(t *model.RefreshToken, fingerprint string, now time.Time) error {
	if t.Fingerprint != fingerprint {
		return ErrInvalidFingerprint
	}

	if t.CreatedAt.Add(time.Duration(t.ExpiresIn) * time.Second).Before(now) {
		return ErrRefreshTokenExpired
	}
	return nil
}
