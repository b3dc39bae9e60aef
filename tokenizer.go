package main

import (
	"log"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens estimates the token count of text for the given model.
// Used when the generation provider does not report usage. Falls back to
// a bytes/4 heuristic when the encoding cannot be loaded (e.g. offline).
func countTokens(text, model string) int {
	encodingOnce.Do(func() {
		var err error
		if model != "" {
			encoding, err = tiktoken.EncodingForModel(model)
		}
		if encoding == nil {
			encoding, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			log.Printf("[Tokenizer] encoding unavailable, using heuristic: %v", err)
		}
	})

	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}
