package main

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Philberto99/philbot/providers"
	"github.com/Philberto99/philbot/session"
)

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
    <title>PhilBot</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { text-align: center; margin: 2.5rem; font-family: system-ui, -apple-system, sans-serif; background: #FFF8F0; color: #2C1F3D; }
        .chat { text-align: left; max-width: 700px; margin: 1.25rem auto; }
        .q { padding: 1.25rem; background: #E8DCC4; font-style: italic; border-left: 4px solid #6B4C8A; }
        .a { padding: 1.5rem 1.25rem; background: #FFFBF5; margin: 0 0 1.5rem 0; border-radius: 8px; border: 1px solid #E8DCC4; white-space: pre-wrap; }
        .tag { float: right; font-size: 0.75rem; color: #6B4C8A; }
        .status { max-width: 700px; margin: 0 auto 1rem; font-size: 0.85rem; color: #5A3D79; }
        form { max-width: 700px; margin: 0 auto 2rem; display: flex; gap: .5rem; }
        input[type="text"] { width: 100%; padding: 1rem 1.25rem; font-size: 1.1rem; border: 3px solid #6B4C8A; border-radius: 12px; background: #FFFBF5; outline: none; }
        input[type="submit"] { padding: 1rem 2rem; font-weight: 600; background: #6B4C8A; color: white; border: none; border-radius: 10px; cursor: pointer; }
        @media (prefers-color-scheme: dark) {
            body { background: #181a1b; color: #e8e6e3; }
            .q { background: #23262a; color: #c9d1d9; }
            .a { background: #222326; color: #e8e6e3; border-color: #444; }
            input[type="text"], input[type="submit"] { background: #23262a; color: #e8e6e3; border-color: #444; }
        }
    </style>
</head>
<body>
    <h1>PhilBot</h1>
    <p><small><i>Ask me anything</i></small></p>
`

const htmlFooter = `</body>
</html>`

// HTTPShell renders the session log and feeds submitted queries to the
// router. Routing cycles are serialized: one query runs to completion
// before the next is accepted.
type HTTPShell struct {
	router *Router
	search *providers.SearchClient

	routeMu sync.Mutex
}

// NewHTTPShell builds the shell over a router and the search client used
// for the quota widget.
func NewHTTPShell(router *Router, search *providers.SearchClient) *HTTPShell {
	return &HTTPShell{router: router, search: search}
}

// StartHTTPServer registers handlers and serves until failure.
func (s *HTTPShell) StartHTTPServer(port int) error {
	http.HandleFunc("/", s.handleRoot)
	http.HandleFunc("/health", handleHealth)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("[HTTP] listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

// isBrowserUA checks if the user agent appears to be from a web browser
func isBrowserUA(ua string) bool {
	ua = strings.ToLower(ua)
	for _, indicator := range []string{
		"mozilla", "msie", "trident", "edge", "chrome", "safari",
		"firefox", "opera", "webkit", "gecko", "khtml",
	} {
		if strings.Contains(ua, indicator) {
			return true
		}
	}
	return false
}

func (s *HTTPShell) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	// Every query path goes through here, so throttle before dispatch.
	if !rateLimitAllow(r.RemoteAddr) {
		http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.handleSubmit(w, r)
	case http.MethodGet:
		// Support curl ?q= queries with a plain-text answer
		if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" && !isBrowserUA(r.Header.Get("User-Agent")) {
			entry := s.route(r, query)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintln(w, entry.Body)
			return
		}
		s.renderPage(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *HTTPShell) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	query := strings.TrimSpace(r.FormValue("q"))
	if query != "" {
		s.route(r, query)
	}

	// Redirect back to GET so a reload never resubmits and the input
	// field comes back empty.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// route runs one serialized routing cycle.
func (s *HTTPShell) route(r *http.Request, query string) session.ResponseEntry {
	s.routeMu.Lock()
	defer s.routeMu.Unlock()

	requestID := generateRequestID()
	start := time.Now()
	entry := s.router.Route(r.Context(), query)
	log.Printf("[HTTP] %s routed source=%s duration_ms=%d", requestID, entry.Source, time.Since(start).Milliseconds())
	return entry
}

func (s *HTTPShell) renderPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	fmt.Fprint(w, htmlHeader)

	sessionLog := s.router.Log()
	tokens := sessionLog.TokensTotal()
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	searchesLeft := s.search.AccountUsage(ctx)
	cancel()
	fmt.Fprintf(w, "    <div class=\"status\">Searches left: %s &middot; Tokens used: %d &middot; Estimated cost: $%.4f</div>\n",
		html.EscapeString(searchesLeft), tokens, session.Cost(tokens))

	fmt.Fprint(w, `    <form method="post" action="/">
        <input type="text" name="q" placeholder="Type your question..." autofocus>
        <input type="submit" value="Ask">
    </form>
    <div class="chat">
`)

	// Newest first, exactly as the log stores them.
	for _, entry := range sessionLog.Entries() {
		fmt.Fprintf(w, "        <div class=\"q\">%s<span class=\"tag\">%s</span></div>\n",
			html.EscapeString(entry.Query), html.EscapeString(string(entry.Source)))
		fmt.Fprintf(w, "        <div class=\"a\">%s</div>\n", html.EscapeString(entry.Body))
	}

	fmt.Fprint(w, "    </div>\n")
	fmt.Fprint(w, htmlFooter)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}
