package inits

import (
	"context"
	"fmt"
	"github.com/redis/go-redis/v9"
)

func Redis(conn string) (*redis.Client, error) {
	opts, err := redis.ParseURL(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis connection string: %w", err)
	}

	rdb := redis.NewClient(opts)

	// 测试连接
	if err = rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
