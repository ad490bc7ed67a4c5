// Package cache signals that named rendered views are stale after a mutation.
// The signal is fire-and-forget: dependent views recompute on next read, and
// a failed signal is logged, never surfaced to the caller.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"

	"waypoint/config"
)

// Invalidator drops cached view entries from redis and pings the rendering
// front end's revalidation webhook. Either backend may be absent; a nil
// invalidator is a no-op.
type Invalidator struct {
	rdb        *redis.Client
	rest       *resty.Client
	webhookURL string
}

// Default is constructed once at startup by Init.
var Default *Invalidator

// Init wires the invalidator from config. Redis connectivity is probed with a
// short timeout; on failure caching degrades to the webhook only.
func Init() {
	inv := &Invalidator{}

	if addr := config.AppConfig.RedisAddr; addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.AppConfig.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CACHE] Redis unavailable at %s: %v", addr, err)
		} else {
			inv.rdb = client
		}
	}

	if url := config.AppConfig.RevalidateURL; url != "" {
		inv.rest = resty.New().SetTimeout(5 * time.Second)
		inv.webhookURL = url
	}

	Default = inv
}

// Invalidate marks the named views stale. It runs asynchronously and never
// blocks or fails the mutation that triggered it.
func (i *Invalidator) Invalidate(views ...string) {
	if i == nil || len(views) == 0 {
		return
	}

	go func() {
		if i.rdb != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			keys := make([]string, 0, len(views))
			for _, view := range views {
				keys = append(keys, "view:"+view)
			}
			if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
				log.Printf("[CACHE] Failed to drop view keys %v: %v", views, err)
			}
		}

		if i.rest != nil {
			_, err := i.rest.R().
				SetHeader("Content-Type", "application/json").
				SetBody(map[string][]string{"paths": views}).
				Post(i.webhookURL)
			if err != nil {
				log.Printf("[CACHE] Revalidation webhook failed for %v: %v", views, err)
			}
		}
	}()
}

// Invalidate signals through the default invalidator, tolerating a nil one.
func Invalidate(views ...string) {
	Default.Invalidate(views...)
}
