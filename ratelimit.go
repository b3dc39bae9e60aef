package main

import (
	"net"
	"sync"

	"golang.org/x/time/rate"
)

// Per-client rate limiting for the presentation shells. One limiter per
// remote IP, 1 request/second with a burst of 5.
var (
	limitersMu sync.Mutex
	limiters   = map[string]*rate.Limiter{}
)

// rateLimitAllow reports whether remoteAddr may submit another query now.
func rateLimitAllow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	limitersMu.Lock()
	limiter, ok := limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(1), 5)
		limiters[host] = limiter
	}
	limitersMu.Unlock()

	return limiter.Allow()
}
