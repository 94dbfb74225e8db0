package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janenicoldelacruz-web/lakson-inventory/config"
)

// DashboardKey is the cache key for the owner dashboard summary.
const DashboardKey = "dashboard:summary"

// New connects to Redis. A blank address disables caching: callers get a nil
// client and must treat it as a no-op.
func New(cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// Invalidator drops cached dashboard data whenever a stock transaction
// commits. It implements stock.Notifier; failures are logged and swallowed,
// a cold cache is the worst case.
type Invalidator struct {
	Client *redis.Client
	Log    *logrus.Logger
}

// EntityChanged implements stock.Notifier
func (inv *Invalidator) EntityChanged(entity string, id uint) {
	if inv.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := inv.Client.Del(ctx, DashboardKey).Err(); err != nil {
		inv.Log.WithError(err).WithFields(logrus.Fields{
			"entity": entity,
			"id":     id,
		}).Warn("dashboard cache invalidation failed")
	}
}
