package main

import (
	"log"

	"github.com/Philberto99/philbot/config"
	"github.com/Philberto99/philbot/session"
)

func main() {
	cfg, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	chat, search, geo, weather := config.BuildAdapters(cfg)
	chat.MaxTokens = envInt("CHAT_MAX_TOKENS", chat.MaxTokens)
	chat.Temperature = envFloat("CHAT_TEMPERATURE", chat.Temperature)

	if !chat.Configured() {
		log.Println("[Main] generation provider unconfigured - generic queries fall back to search")
	}
	if !search.Configured() {
		log.Println("[Main] search provider unconfigured")
	}

	if err := InitAuditDB(); err != nil {
		log.Printf("[Main] audit database unavailable: %v", err)
	}

	// One interactive session per process; the router owns its log.
	router := NewRouter(chat, search, geo, weather, session.NewLog())

	// DNS shell (stateless, one throwaway session per query)
	if DNS_PORT > 0 {
		dnsShell := NewDNSShell(func(perQuery *session.Log) *Router {
			return NewRouter(chat, search, geo, weather, perQuery)
		})
		go func() {
			if err := dnsShell.StartDNSServer(DNS_PORT); err != nil {
				log.Printf("[DNS] server stopped: %v", err)
			}
		}()
	}

	shell := NewHTTPShell(router, search)
	if err := shell.StartHTTPServer(HTTP_PORT); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
