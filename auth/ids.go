// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/danielhkuo/quickly-meet/models"
)

const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GeneratePollID creates a short, URL-friendly poll identifier
func GeneratePollID() (string, error) {
	return GenerateToken(models.PollIDLength)
}

// GenerateToken creates a random base62 token of length n.
// Bytes >= 248 are discarded so every character is equally likely.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid token length %d", n)
	}

	result := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(result) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}
		for _, b := range buf {
			if b >= 248 {
				continue
			}
			result = append(result, base62Chars[b%62])
			if len(result) == n {
				break
			}
		}
	}

	return string(result), nil
}
