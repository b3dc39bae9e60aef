package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/Philberto99/philbot/session"
)

// DNSShell answers TXT queries through the same classifier and router as
// the web page: dig @host "what-time-is-it" TXT. Each query gets a fresh
// throwaway session log, so DNS answers carry no conversation history.
type DNSShell struct {
	newRouter func(*session.Log) *Router
}

// NewDNSShell builds the shell. newRouter constructs a router bound to
// the per-query log.
func NewDNSShell(newRouter func(*session.Log) *Router) *DNSShell {
	return &DNSShell{newRouter: newRouter}
}

// StartDNSServer serves TXT queries on the given UDP port.
func (s *DNSShell) StartDNSServer(port int) error {
	log.Printf("[DNS] starting DNS server on port %d", port)
	dns.HandleFunc(".", s.handleDNS)

	server := &dns.Server{
		Addr: fmt.Sprintf(":%d", port),
		Net:  "udp",
	}
	return server.ListenAndServe()
}

func (s *DNSShell) handleDNS(w dns.ResponseWriter, r *dns.Msg) {
	if !rateLimitAllow(w.RemoteAddr().String()) {
		return
	}
	if len(r.Question) == 0 {
		return
	}

	m := new(dns.Msg)
	m.SetReply(r)
	m.Authoritative = true

	for _, q := range r.Question {
		if q.Qtype != dns.TypeTXT {
			continue
		}

		name := strings.TrimSuffix(q.Name, ".")
		query := strings.ReplaceAll(name, "-", " ")
		if query == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		router := s.newRouter(session.NewLog())
		entry := router.Route(ctx, query)
		cancel()

		response := entry.Body
		if len(response) > 500 {
			response = response[:497] + "..."
		}

		// Split response into 255-byte chunks for DNS TXT records
		var txtStrings []string
		for i := 0; i < len(response); i += 255 {
			end := i + 255
			if end > len(response) {
				end = len(response)
			}
			txtStrings = append(txtStrings, response[i:end])
		}

		txt := &dns.TXT{
			Hdr: dns.RR_Header{
				Name:   q.Name,
				Rrtype: dns.TypeTXT,
				Class:  dns.ClassINET,
				Ttl:    60,
			},
			Txt: txtStrings,
		}
		m.Answer = append(m.Answer, txt)
	}

	w.WriteMsg(m)
}
