package customerdirectory

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "customer-directory:"

// Cache is the subset of the Redis client used by CachedDirectory.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedDirectory is a read-through Redis cache in front of another directory.
// Only successful lookups with a name are cached.
type CachedDirectory struct {
	next   portssvc.CustomerDirectory
	cache  Cache
	ttl    time.Duration
	prefix string
}

// NewCachedDirectory wraps next with a cache whose entries live for ttl.
func NewCachedDirectory(next portssvc.CustomerDirectory, cache Cache, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{next: next, cache: cache, ttl: ttl, prefix: defaultKeyPrefix}
}

// NewRedisClient builds the client used for the directory cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

var _ portssvc.CustomerDirectory = (*CachedDirectory)(nil)

func (d *CachedDirectory) key(customerID string) string {
	return d.prefix + customerID
}

func (d *CachedDirectory) GetCustomer(ctx context.Context, customerID string) (*domain.CustomerInfo, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := d.key(customerID)

	val, err := d.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var info domain.CustomerInfo
		if uerr := json.Unmarshal([]byte(val), &info); uerr == nil && strings.TrimSpace(info.Name) != "" {
			logger.Debug("Customer directory cache hit", slog.String("customer_id", customerID))
			return &info, nil
		}
		logger.Warn("Discarding unreadable customer directory cache entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		logger.Debug("Customer directory cache miss", slog.String("customer_id", customerID))
	default:
		logger.Warn("Customer directory cache get error", slog.String("key", key), slog.String("error", err.Error()))
	}

	info, err := d.next.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if info == nil || strings.TrimSpace(info.Name) == "" {
		return info, nil
	}

	data, err := json.Marshal(info)
	if err != nil {
		logger.Warn("Customer directory cache marshal error", slog.String("key", key), slog.String("error", err.Error()))
		return info, nil
	}
	if err := d.cache.Set(ctx, key, data, d.ttl).Err(); err != nil {
		logger.Warn("Customer directory cache set error", slog.String("key", key), slog.String("error", err.Error()))
	}
	return info, nil
}
