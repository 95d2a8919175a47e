package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue is a Redis-list work queue. Jobs are JSON strings pushed with
// LPush and popped with BRPop, so multiple consumers can share one key.
type Queue struct {
	client *redis.Client
	key    string
}

func ConnectQueue(redisURL, key string) (*Queue, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return nil, err
	}

	return &Queue{client: client, key: key}, nil
}

func (q *Queue) Push(ctx context.Context, payload string) error {
	return q.client.LPush(ctx, q.key, payload).Err()
}

func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (string, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

func (q *Queue) Close() error {
	return q.client.Close()
}
