package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/verdantmarket/verdant-backend/internal/logger"
)

// SchemaCache is a read-through cache for flow section documents.
// Onboarding pages fetch schemas far more often than admins edit them;
// saves invalidate the key so editors never see a stale read for long.
type SchemaCache interface {
	Get(ctx context.Context, flowName string) ([]byte, bool, error)
	Set(ctx context.Context, flowName string, data []byte) error
	Invalidate(ctx context.Context, flowName string) error
	Close() error
}

type schemaCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSchemaCache(log *logger.Logger) (SchemaCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &schemaCache{
		log: log.With("client", "SchemaCache"),
		rdb: rdb,
		ttl: 10 * time.Minute,
	}, nil
}

func cacheKey(flowName string) string {
	return "flow_sections:" + flowName
}

func (sc *schemaCache) Get(ctx context.Context, flowName string) ([]byte, bool, error) {
	raw, err := sc.rdb.Get(ctx, cacheKey(flowName)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", flowName, err)
	}
	return raw, true, nil
}

func (sc *schemaCache) Set(ctx context.Context, flowName string, data []byte) error {
	if err := sc.rdb.Set(ctx, cacheKey(flowName), data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", flowName, err)
	}
	return nil
}

func (sc *schemaCache) Invalidate(ctx context.Context, flowName string) error {
	if err := sc.rdb.Del(ctx, cacheKey(flowName)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %q: %w", flowName, err)
	}
	return nil
}

func (sc *schemaCache) Close() error {
	return sc.rdb.Close()
}
