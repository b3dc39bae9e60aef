package main

import (
	"database/sql"
	"log"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Philberto99/philbot/providers"
)

var (
	auditDB      *sql.DB
	auditDBOnce  sync.Once
	auditEnabled = true
)

// InitAuditDB opens the sqlite audit trail of generation calls. Set
// ENABLE_AUDIT=false to disable. The in-memory session log is unrelated
// to this and never persisted.
func InitAuditDB() error {
	if os.Getenv("ENABLE_AUDIT") == "false" {
		auditEnabled = false
		log.Println("[Audit] audit logging disabled")
		return nil
	}

	var err error
	auditDBOnce.Do(func() {
		auditDB, err = sql.Open("sqlite3", "philbot_audit.db")
		if err != nil {
			log.Printf("[Audit] failed to open audit database: %v", err)
			return
		}

		schema := `
		CREATE TABLE IF NOT EXISTS generation_audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			query_hash TEXT NOT NULL,
			model TEXT,
			finish_reason TEXT,
			tokens INTEGER,
			error TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_generation_timestamp ON generation_audit(timestamp);
		`

		if _, err = auditDB.Exec(schema); err != nil {
			log.Printf("[Audit] failed to create audit schema: %v", err)
			return
		}

		log.Println("[Audit] generation audit database initialized")
	})

	return err
}

// auditGeneration records the outcome of one generation call. Only the
// query hash is stored, never the query or response text.
func auditGeneration(query string, result *providers.ChatResult, tokens int, callErr error) {
	if !auditEnabled || auditDB == nil {
		return
	}

	model, finishReason := "", ""
	if result != nil {
		model = result.Model
		finishReason = result.FinishReason
	}
	errorStr := ""
	if callErr != nil {
		errorStr = callErr.Error()
	}

	_, err := auditDB.Exec(
		`INSERT INTO generation_audit (query_hash, model, finish_reason, tokens, error)
		 VALUES (?, ?, ?, ?, ?)`,
		generateSignature(query), model, finishReason, tokens, errorStr)
	if err != nil {
		log.Printf("[Audit] failed to record generation call: %v", err)
	}
}
