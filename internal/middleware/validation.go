package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxIDLength bounds identifiers taken from the URL path.
const MaxIDLength = 128

// MaxQueryLength bounds free-text query parameters.
const MaxQueryLength = 200

// ValidateID validates a backend identifier taken from the path.
func ValidateID(kind, id string) error {
	if id == "" {
		return errors.New(kind + " ID cannot be empty")
	}
	if len(id) > MaxIDLength {
		return errors.New(kind + " ID exceeds maximum length")
	}
	if !utf8.ValidString(id) || strings.ContainsAny(id, "/?#\\ \t\r\n") {
		return errors.New("invalid " + kind + " ID format")
	}
	return nil
}

// ValidateQuery validates a free-text query parameter.
func ValidateQuery(q string) error {
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return errors.New("query exceeds maximum length")
	}
	if !utf8.ValidString(q) {
		return errors.New("query must be valid UTF-8")
	}
	return nil
}
