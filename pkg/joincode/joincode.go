// Package joincode generates and compares workspace join codes: 6 characters
// drawn uniformly from 0-9a-z, compared case-insensitively.
package joincode

import (
	"crypto/rand"
	"strings"
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	Length   = 6
)

// Generate returns a fresh lowercase code. Bytes at or above the largest
// multiple of 36 are rejected so every symbol is equally likely.
func Generate() string {
	const max = byte(len(alphabet) * (256 / len(alphabet))) // 252

	code := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(code) < Length {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand never fails on supported platforms
			panic(err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == Length {
				break
			}
		}
	}
	return string(code)
}

// Matches reports whether a presented code matches the stored one. Stored
// codes are always lowercase; presented codes may arrive in any case.
func Matches(stored, presented string) bool {
	return stored == strings.ToLower(strings.TrimSpace(presented))
}

// Valid reports whether s has the shape of a join code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, ch := range s {
		if !strings.ContainsRune(alphabet, ch) {
			return false
		}
	}
	return true
}
