// Package session holds the in-memory record of one interactive
// session: the newest-first response log and the token usage ledger the
// cost overrides read from. Nothing here is persisted; a restart starts
// an empty session.
package session

import (
	"sync"
	"time"
)

// SourceTag identifies which path produced a response.
type SourceTag string

const (
	SourceTime       SourceTag = "OVERRIDE_TIME"
	SourceWeather    SourceTag = "OVERRIDE_WEATHER"
	SourceCost       SourceTag = "OVERRIDE_COST"
	SourceGeneration SourceTag = "GENERATION"
	SourceSearch     SourceTag = "SEARCH"
	SourceError      SourceTag = "ERROR"
)

// ResponseEntry is one formatted answer. Entries are values and never
// mutated after insertion.
type ResponseEntry struct {
	Query     string
	Body      string
	Source    SourceTag
	CreatedAt time.Time
}

// UsageEntry records the token cost of one successful generation call.
type UsageEntry struct {
	Query     string
	Tokens    int
	Timestamp time.Time
}

// CostPerThousandTokens is the flat price used for cost estimates (USD).
const CostPerThousandTokens = 0.01

// Cost converts a token count to an estimated dollar amount.
func Cost(tokens int) float64 {
	return float64(tokens) / 1000 * CostPerThousandTokens
}

// Log is the ordered session record. The response router is the only
// writer; presentation shells only read. The lock exists because the
// HTTP shell renders concurrently with a pending routing cycle.
type Log struct {
	mu      sync.RWMutex
	entries []ResponseEntry // newest first
	usage   []UsageEntry    // append order
}

// NewLog returns an empty session log.
func NewLog() *Log {
	return &Log{}
}

// Prepend inserts entry at the head of the display sequence.
func (l *Log) Prepend(entry ResponseEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]ResponseEntry{entry}, l.entries...)
}

// RecordUsage appends a usage entry to the ledger.
func (l *Log) RecordUsage(entry UsageEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.usage = append(l.usage, entry)
}

// Entries returns the response sequence, newest first. The slice is a
// copy; callers cannot disturb the log through it.
func (l *Log) Entries() []ResponseEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ResponseEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Usage returns a copy of the usage ledger in append order.
func (l *Log) Usage() []UsageEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]UsageEntry, len(l.usage))
	copy(out, l.usage)
	return out
}

// RecentBodies returns up to n most recent response bodies, oldest of
// those first, for building conversation context.
func (l *Log) RecentBodies(n int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, l.entries[i].Body)
	}
	return out
}

// TokensTotal sums tokens over the whole ledger.
func (l *Log) TokensTotal() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0
	for _, u := range l.usage {
		total += u.Tokens
	}
	return total
}

// TokensOn sums tokens for entries recorded on the given calendar day,
// in day's location.
func (l *Log) TokensOn(day time.Time) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	y, m, d := day.Date()
	total := 0
	for _, u := range l.usage {
		uy, um, ud := u.Timestamp.In(day.Location()).Date()
		if uy == y && um == m && ud == d {
			total += u.Tokens
		}
	}
	return total
}
