package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

var ErrScoreNotFound = errors.New("score not found")

type ScoreRepository interface {
	Get(ctx context.Context, sessionID string) (entity.Score, error)
	Save(ctx context.Context, sessionID string, score entity.Score) error
	Delete(ctx context.Context, sessionID string) error
}

type dbScore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreRepository stores tallies in redis; a zero ttl keeps them forever.
func NewScoreRepository(client *redis.Client, ttl time.Duration) ScoreRepository {
	return &dbScore{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbScore) Get(ctx context.Context, sessionID string) (entity.Score, error) {
	response, err := that.client.Get(ctx, scoreKey(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Score{}, ErrScoreNotFound
	}

	if err != nil {
		return entity.Score{}, fmt.Errorf("failed to get score: %w", err)
	}

	var score entity.Score
	if err = json.Unmarshal([]byte(response), &score); err != nil {
		return entity.Score{}, fmt.Errorf("failed to unmarshal score: %w", err)
	}

	return score, nil
}

func (that *dbScore) Save(ctx context.Context, sessionID string, score entity.Score) error {
	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("could not marshal score: %w", err)
	}

	if err = that.client.Set(ctx, scoreKey(sessionID), scoreJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set score: %w", err)
	}

	return nil
}

func (that *dbScore) Delete(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, scoreKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	if deleted == 0 {
		return ErrScoreNotFound
	}

	return nil
}
