// Package cmdutil provides shared helpers for working with raw command
// strings: normalization for deduplication, hashing, and tokenization.
package cmdutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// NormalizeCommand normalizes a command for comparison and deduplication.
// It lowercases the command, trims whitespace, and normalizes variable arguments.
func NormalizeCommand(cmd string) string {
	cmd = strings.ToLower(strings.TrimSpace(cmd))

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return ""
	}

	// Keep the base command and flags, but collapse variable arguments so
	// "vim /tmp/a" and "vim /tmp/b" dedup to the same entry.
	normalized := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 {
			normalized = append(normalized, part)
			continue
		}

		if strings.HasPrefix(part, "-") {
			normalized = append(normalized, part)
			continue
		}

		if strings.HasPrefix(part, "/") || strings.HasPrefix(part, "~") {
			normalized = append(normalized, "<path>")
			continue
		}

		if strings.Contains(part, "://") {
			normalized = append(normalized, "<url>")
			continue
		}

		if IsNumeric(part) {
			normalized = append(normalized, "<num>")
			continue
		}

		normalized = append(normalized, part)
	}

	return strings.Join(normalized, " ")
}

// HashCommand generates a SHA256 hash of a normalized command string.
// The command should already be normalized before calling this function.
func HashCommand(normalizedCmd string) string {
	hash := sha256.Sum256([]byte(normalizedCmd))
	return hex.EncodeToString(hash[:])
}

// IsNumeric checks if a string contains only digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
