package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/codec"
	"github.com/rocketscienceinc/scorekeeper-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

const keyPrefix = "scoreboard:"

type GameRepository interface {
	Save(ctx context.Context, id string, game *entity.Game) error
	Load(ctx context.Context, id string) (*entity.Game, error)
	Delete(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) Save(ctx context.Context, id string, game *entity.Game) error {
	record, err := codec.Marshal(game)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, keyPrefix+id, record, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

// Load returns ErrGameNotFound for a missing key and an error wrapping
// codec.ErrInvalidRecord when the stored record fails validation.
func (that *dbGame) Load(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game, err := codec.Decode(response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", id, err)
	}

	return game, nil
}

func (that *dbGame) Delete(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
