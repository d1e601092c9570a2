package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every configured dependency answered.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis
}

// HealthMonitor pings Mongo and Redis and keeps the latest result.
type HealthMonitor struct {
	Redis    *redis.Client
	Mongo    *mongo.Client
	Interval time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor builds a monitor. A nil Redis client counts as healthy,
// since the cache is optional.
func NewHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &HealthMonitor{Redis: redisClient, Mongo: mongoClient, Interval: interval}
}

// Status returns the latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{Redis: true, CheckedAt: time.Now().UTC()}
	if m.Redis != nil {
		status.Redis = m.Redis.Ping(pingCtx).Err() == nil
	}
	if m.Mongo != nil {
		status.Mongo = m.Mongo.Ping(pingCtx, nil) == nil
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start checks immediately and then on every tick until ctx is done.
func (m *HealthMonitor) Start(ctx context.Context) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
