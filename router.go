package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Philberto99/philbot/providers"
	"github.com/Philberto99/philbot/session"
)

// User-visible bodies for the degraded paths. The router never lets an
// adapter failure escape as a fault; it becomes one of these.
const (
	msgLocationUnavailable = "Location unavailable - could not determine your position."
	msgNoResults           = "No results found."
	msgNoValidResponse     = "No valid response - no generation or search provider is configured."
)

const systemPreamble = "You are PhilBot, a concise and helpful assistant. " +
	"Answer in plain text without markdown formatting."

// historyDepth is how many previous answers travel with a generic query.
const historyDepth = 5

// Adapter contracts the router dispatches on. Concrete clients live in
// the providers package; tests substitute fakes.
type chatProvider interface {
	Configured() bool
	Chat(ctx context.Context, messages []providers.Message) (*providers.ChatResult, error)
}

type searchProvider interface {
	Configured() bool
	Search(ctx context.Context, query string) ([]providers.SearchResult, error)
}

type geoProvider interface {
	Locate(ctx context.Context) (*providers.Location, error)
}

type weatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*providers.Observation, error)
}

// Router turns a classified query into exactly one response entry,
// calling out to adapters as the intent requires. It is the sole writer
// of the session log it holds.
type Router struct {
	chat    chatProvider
	search  searchProvider
	geo     geoProvider
	weather weatherProvider

	log *session.Log
	now func() time.Time
}

// NewRouter wires a router over its adapters and session log. Nil
// adapters are legal and behave as unconfigured providers.
func NewRouter(chat chatProvider, search searchProvider, geo geoProvider, weather weatherProvider, sessionLog *session.Log) *Router {
	return &Router{
		chat:    chat,
		search:  search,
		geo:     geo,
		weather: weather,
		log:     sessionLog,
		now:     time.Now,
	}
}

// Log exposes the session log for read-only presentation.
func (r *Router) Log() *session.Log {
	return r.log
}

// Route runs one full routing cycle: classify, dispatch, format,
// prepend. Every call yields exactly one new entry in the log.
func (r *Router) Route(ctx context.Context, query string) session.ResponseEntry {
	query = strings.TrimSpace(query)
	intent := classify(query)
	log.Printf("[Router] intent=%s query_hash=%s", intent, generateSignature(query))

	var body string
	var source session.SourceTag

	switch intent {
	case IntentTime:
		body, source = r.localTime()
	case IntentWeather:
		body, source = r.currentWeather(ctx)
	case IntentCostToday:
		tokens := r.log.TokensOn(r.now())
		body = fmt.Sprintf("Tokens used today: %d (estimated cost: $%.4f)", tokens, session.Cost(tokens))
		source = session.SourceCost
	case IntentCostTotal:
		tokens := r.log.TokensTotal()
		body = fmt.Sprintf("Total tokens used: %d (estimated cost: $%.4f)", tokens, session.Cost(tokens))
		source = session.SourceCost
	default:
		body, source = r.generate(ctx, query)
	}

	entry := session.ResponseEntry{
		Query:     query,
		Body:      "You asked: " + query + "\n\n" + body,
		Source:    source,
		CreatedAt: r.now(),
	}
	r.log.Prepend(entry)
	return entry
}

// localTime answers the TIME override from the local clock. No network.
func (r *Router) localTime() (string, session.SourceTag) {
	return r.now().Format("Monday, 02 January 2006 — 15:04:05"), session.SourceTime
}

// currentWeather chains geolocation and the weather service. Either
// failure degrades to an error entry; there is no retry.
func (r *Router) currentWeather(ctx context.Context) (string, session.SourceTag) {
	if r.geo == nil {
		return msgLocationUnavailable, session.SourceError
	}
	loc, err := r.geo.Locate(ctx)
	if err != nil {
		if errors.Is(err, providers.ErrNoLocation) {
			return msgLocationUnavailable, session.SourceError
		}
		return fmt.Sprintf("Could not determine location: %v", err), session.SourceError
	}

	if r.weather == nil {
		return fmt.Sprintf("Weather lookup failed: %v", providers.ErrUnconfigured), session.SourceError
	}
	obs, err := r.weather.Current(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return fmt.Sprintf("Weather lookup failed: %v", err), session.SourceError
	}

	return fmt.Sprintf("%s: %.0f°C, %s", loc.City, obs.TempC, obs.Description), session.SourceWeather
}

// generate handles GENERIC queries: chat completion first, web search as
// fallback. Generation failures are caught here and never propagate.
func (r *Router) generate(ctx context.Context, query string) (string, session.SourceTag) {
	chatReady := r.chat != nil && r.chat.Configured()
	searchReady := r.search != nil && r.search.Configured()

	if !chatReady && !searchReady {
		return msgNoValidResponse, session.SourceError
	}

	if chatReady {
		result, err := r.chat.Chat(ctx, r.conversation(query))
		if err == nil {
			tokens := result.TotalTokens
			if tokens == 0 {
				tokens = countTokens(query+result.Text, result.Model)
			}
			r.log.RecordUsage(session.UsageEntry{
				Query:     query,
				Tokens:    tokens,
				Timestamp: r.now(),
			})
			auditGeneration(query, result, tokens, nil)
			return result.Text, session.SourceGeneration
		}
		log.Printf("[Router] generation failed, falling back to search: %v", err)
		auditGeneration(query, nil, 0, err)
	}

	if !searchReady {
		return msgNoValidResponse, session.SourceError
	}
	return r.fallbackSearch(ctx, query)
}

// conversation assembles the chat payload: preamble, recent answers,
// then the new query.
func (r *Router) conversation(query string) []providers.Message {
	messages := []providers.Message{{Role: "system", Content: systemPreamble}}
	for _, body := range r.log.RecentBodies(historyDepth) {
		messages = append(messages, providers.Message{Role: "assistant", Content: body})
	}
	return append(messages, providers.Message{Role: "user", Content: query})
}

// fallbackSearch turns search hits into a titled link list, three at most.
func (r *Router) fallbackSearch(ctx context.Context, query string) (string, session.SourceTag) {
	results, err := r.search.Search(ctx, query)
	if err != nil {
		if errors.Is(err, providers.ErrNoResults) {
			return msgNoResults, session.SourceError
		}
		return fmt.Sprintf("Search failed: %v", err), session.SourceError
	}

	if len(results) == 0 {
		return msgNoResults, session.SourceError
	}
	if len(results) > 3 {
		results = results[:3]
	}
	var b strings.Builder
	b.WriteString("Top results:\n")
	for i, res := range results {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, res.Title, res.Link)
	}
	return strings.TrimRight(b.String(), "\n"), session.SourceSearch
}
