package main

import (
	"log"
	"os"
)

// Port configuration based on environment
var (
	HTTP_PORT int
	DNS_PORT  int
)

func init() {
	// Check for high-port development mode
	if os.Getenv("HIGH_PORT_MODE") == "true" {
		log.Println("Running in HIGH_PORT_MODE - using non-privileged ports")
		HTTP_PORT = 8080 // Instead of 80
		DNS_PORT = 8053  // Instead of 53
	} else {
		// Production mode - standard ports
		HTTP_PORT = 80
		DNS_PORT = 53
	}

	// DNS_PORT=0 disables the DNS shell entirely
	if os.Getenv("DISABLE_DNS") == "true" {
		DNS_PORT = 0
	}

	log.Printf("Port configuration: HTTP=%d, DNS=%d", HTTP_PORT, DNS_PORT)
}
