// Package id generates prefixed, URL-safe identifiers.
package id

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for persisted records.
const (
	PrefixUser     = "user"
	PrefixSession  = "sess"
	PrefixFavorite = "fav"
)

// nanoidLength is the gonanoid default.
const nanoidLength = 21

// Generate returns prefix + "-" + a 21 character NanoID,
// e.g. "user-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// HasPrefix reports whether s looks like an id produced by Generate(prefix).
func HasPrefix(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"-")
	return ok && len(rest) == nanoidLength
}
