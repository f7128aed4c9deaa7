package ratelimit

import (
	"sync"
	"time"

	"github.com/dalfonso89/auth-currency-gateway/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 5 * time.Minute
	idleBucketTTL   = 30 * time.Minute
)

// Limiter implements a token bucket rate limiter per client IP
type Limiter struct {
	Configuration *config.Config
	logger        *logrus.Logger

	// Map of IP -> token bucket
	clientBuckets map[string]*clientBucket
	bucketsMutex  sync.Mutex

	// Cleanup goroutine control
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a new rate limiter
func NewLimiter(configuration *config.Config, logger *logrus.Logger) *Limiter {
	rateLimiter := &Limiter{
		Configuration: configuration,
		logger:        logger,
		clientBuckets: make(map[string]*clientBucket),
		cleanupTicker: time.NewTicker(cleanupInterval),
		stopCleanup:   make(chan struct{}),
	}

	go rateLimiter.cleanup()

	return rateLimiter
}

// Allow checks if a request from the given IP is allowed
func (rateLimiter *Limiter) Allow(clientIP string) bool {
	if !rateLimiter.Configuration.RateLimitEnabled {
		return true
	}

	rateLimiter.bucketsMutex.Lock()
	bucket, bucketExists := rateLimiter.clientBuckets[clientIP]
	if !bucketExists {
		bucket = &clientBucket{limiter: rate.NewLimiter(rateLimiter.refillRate(), rateLimiter.Configuration.RateLimitBurst)}
		rateLimiter.clientBuckets[clientIP] = bucket
	}
	bucket.lastSeen = time.Now()
	rateLimiter.bucketsMutex.Unlock()

	return bucket.limiter.Allow()
}

// refillRate spreads RateLimitRequests evenly over RateLimitWindow
func (rateLimiter *Limiter) refillRate() rate.Limit {
	window := rateLimiter.Configuration.RateLimitWindow
	if window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(rateLimiter.Configuration.RateLimitRequests) / window.Seconds())
}

// ResetAt is when a throttled client should have a token again
func (rateLimiter *Limiter) ResetAt() time.Time {
	return time.Now().Add(rateLimiter.Configuration.RateLimitWindow)
}

// cleanup removes idle buckets to prevent memory leaks
func (rateLimiter *Limiter) cleanup() {
	for {
		select {
		case <-rateLimiter.cleanupTicker.C:
			rateLimiter.evictIdle(time.Now())
		case <-rateLimiter.stopCleanup:
			rateLimiter.cleanupTicker.Stop()
			return
		}
	}
}

func (rateLimiter *Limiter) evictIdle(now time.Time) {
	rateLimiter.bucketsMutex.Lock()
	defer rateLimiter.bucketsMutex.Unlock()

	for clientIP, bucket := range rateLimiter.clientBuckets {
		if now.Sub(bucket.lastSeen) > idleBucketTTL {
			delete(rateLimiter.clientBuckets, clientIP)
		}
	}
}

// Stop stops the cleanup goroutine
func (rateLimiter *Limiter) Stop() {
	rateLimiter.stopOnce.Do(func() {
		close(rateLimiter.stopCleanup)
	})
}
