package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var ErrPreferenceNotFound = errors.New("preference not found")

type PreferenceRepository interface {
	GetTheme(ctx context.Context, sessionID string) (entity.Theme, error)
	SaveTheme(ctx context.Context, sessionID string, theme entity.Theme) error
}

type dbPreference struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPreferenceRepository(client *redis.Client, ttl time.Duration) PreferenceRepository {
	return &dbPreference{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbPreference) GetTheme(ctx context.Context, sessionID string) (entity.Theme, error) {
	response, err := that.client.Get(ctx, themeKey(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrPreferenceNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get theme: %w", err)
	}

	return entity.Theme(response), nil
}

func (that *dbPreference) SaveTheme(ctx context.Context, sessionID string, theme entity.Theme) error {
	if err := that.client.Set(ctx, themeKey(sessionID), string(theme), that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	return nil
}
