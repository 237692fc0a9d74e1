// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePollID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := GeneratePollID()
		require.NoError(t, err)
		require.Len(t, id, 6)

		for _, c := range id {
			require.True(t, strings.ContainsRune(base62Chars, c), "non-base62 char %q in %s", c, id)
		}
		seen[id] = true
	}

	// 62^6 possible IDs; 200 draws colliding would point at a broken generator
	require.Greater(t, len(seen), 195)
}

func TestGenerateToken(t *testing.T) {
	for _, n := range []int{1, 6, 32} {
		token, err := GenerateToken(n)
		require.NoError(t, err)
		require.Len(t, token, n)
	}

	_, err := GenerateToken(0)
	require.Error(t, err)
}
