package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// RefreshToken is a stored server-side refresh token
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// TokenRepository handles refresh token persistence
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{db: db}
}

// Store persists a freshly issued refresh token
func (r *TokenRepository) Store(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, userID, token, expiresAt); err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// Get fetches a refresh token by its value
func (r *TokenRepository) Get(ctx context.Context, token string) (*RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = $1`

	var rt RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}
	return &rt, nil
}

// Revoke marks a refresh token as revoked
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser revokes every refresh token of one user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error revoking refresh tokens for user ID=%d: %w", userID, err)
	}
	return nil
}

// DeleteExpired clears out tokens past their expiry; called opportunistically
func (r *TokenRepository) DeleteExpired(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < now()`); err != nil {
		return fmt.Errorf("error deleting expired refresh tokens: %w", err)
	}
	return nil
}
