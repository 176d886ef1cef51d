package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/retainworks/retainbot/src/retention/types"
)

const streamTurns = "retainbot.turns"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishTurn feeds every persisted conversation turn to a Redis stream so
// downstream consumers (dashboards, follow-up bots) can react without
// polling the document store.
func PublishTurn(ctx context.Context, rdb *redis.Client, customerID string, turn types.Turn) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamTurns,
		Values: map[string]any{
			"customer_id": customerID,
			"turn_id":     turn.ID,
			"role":        turn.Role,
			"content":     turn.Content,
			"time":        turn.Timestamp.Unix(),
		},
	}).Result()
	return err
}
