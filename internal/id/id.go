// Package id generates short random identifiers used for request correlation.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// requestAlphabet avoids look-alike characters so IDs survive being read aloud
// from a log line.
const requestAlphabet = "23456789abcdefghijkmnpqrstuvwxyz"

const requestIDLength = 16

// Generate creates a prefixed NanoID, e.g. "req-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// RequestID returns a compact lowercase identifier for an inbound HTTP request.
// It falls back to a default NanoID only if the custom alphabet fails.
func RequestID() string {
	id, err := gonanoid.Generate(requestAlphabet, requestIDLength)
	if err != nil {
		return MustGenerate("req")
	}
	return "req-" + id
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
