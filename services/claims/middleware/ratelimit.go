// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides Gin middleware for the claims service.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-client token bucket limiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate allowed per client IP.
	RequestsPerSecond float64

	// Burst is the maximum burst size per client IP.
	Burst int

	// ClientTTL is how long an idle client's bucket is retained before
	// being evicted.
	ClientTTL time.Duration
}

// DefaultRateLimitConfig allows 10 req/s with a burst of 20 per client.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		ClientTTL:         10 * time.Minute,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter tracks one token bucket per client IP.
//
// Thread Safety: Safe for concurrent use; the client map is protected by
// a mutex.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	cfg     RateLimitConfig
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

func (rl *rateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.cfg.ClientTTL)
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// RateLimit returns middleware enforcing a per-client-IP token bucket.
// Requests over the limit receive 429 with a retryable JSON error body.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	rl := &rateLimiter{
		clients: make(map[string]*client),
		cfg:     cfg,
	}

	// Background eviction keeps the client map bounded.
	if cfg.ClientTTL > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ClientTTL)
			defer ticker.Stop()
			for range ticker.C {
				rl.evictStale()
			}
		}()
	}

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
