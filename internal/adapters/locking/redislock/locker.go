// Package redislock implementa locking.Locker sobre Redis para varias réplicas del API.
// El lock es SET NX PX con un token aleatorio; sólo quien tiene el token lo libera.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-shelter/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL    = 30 * time.Second
	defaultRetry  = 25 * time.Millisecond
	defaultPrefix = "shelter:lock:"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type Options struct {
	TTL    time.Duration
	Retry  time.Duration
	Prefix string
	Log    logger.Logger
}

type Locker struct {
	rdb    *redis.Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
	log    logger.Logger
}

func New(rdb *redis.Client, opts Options) *Locker {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Retry <= 0 {
		opts.Retry = defaultRetry
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Locker{rdb: rdb, ttl: opts.TTL, retry: opts.Retry, prefix: opts.Prefix, log: opts.Log}
}

// Connect abre el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 10 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	k := l.prefix + key
	token := uuid.NewString()

	t := time.NewTicker(l.retry)
	defer t.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	return func() {
		// sin ctx del request: el release tiene que salir aunque el request se haya cancelado
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{k}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warn("redis unlock failed", map[string]any{"key": key, "error": err})
		}
	}, nil
}
