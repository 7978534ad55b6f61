package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionRepo держит в Redis обе стороны жизни сессии:
// refresh-токены по пользователю и чёрный список access-токенов после выхода.
type SessionRepo struct {
	Client *redis.Client
}

func New(client *redis.Client) *SessionRepo {
	return &SessionRepo{Client: client}
}

func (r *SessionRepo) refreshKey(userID uuid.UUID) string {
	return fmt.Sprintf("refresh:%s", userID)
}

func (r *SessionRepo) blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func (r *SessionRepo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return r.Client.Set(ctx, r.refreshKey(userID), token, ttl).Err()
}

func (r *SessionRepo) ValidateRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	stored, err := r.Client.Get(ctx, r.refreshKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

func (r *SessionRepo) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return r.Client.Del(ctx, r.refreshKey(userID)).Err()
}

func (r *SessionRepo) BlacklistAccessToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	// дробный TTL go-redis шлёт как PX; держим целые секунды
	if ttl = ttl.Truncate(time.Second); ttl == 0 {
		ttl = time.Second
	}
	return r.Client.Set(ctx, r.blacklistKey(token), "1", ttl).Err()
}

func (r *SessionRepo) IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := r.Client.Get(ctx, r.blacklistKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
