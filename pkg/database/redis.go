package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"family_hub_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis 建立 redis 连接池。积分余额和周餐投票计票的缓存都走这里。
// 单家庭部署并发很低，池子给小，连不上时快速失败交由启动方处理。
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", rdb.Options().Addr, err)
	}
	return rdb, nil
}
