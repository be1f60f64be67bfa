// Package testutil provides key fixtures shared by package tests.
//
// RSA generation dominates test time, so key pairs are generated once per
// name and reused for the life of the test binary.
package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

// RSABits keeps fixture keys small. Production uses identity.DefaultRSABits.
const RSABits = 1024

var (
	mu    sync.Mutex
	cache = make(map[string]identity.KeyPair)
)

// KeyPair returns the cached key pair for name, generating it on first use.
func KeyPair(t testing.TB, name string) identity.KeyPair {
	t.Helper()

	mu.Lock()
	defer mu.Unlock()

	if keys, ok := cache[name]; ok {
		return keys
	}
	keys, err := identity.GenerateKeyPair(RSABits)
	require.NoError(t, err)
	cache[name] = keys
	return keys
}

// Identity returns an identity whose keys are cached under id.
func Identity(t testing.TB, id, name string) identity.Identity {
	t.Helper()
	return identity.New(id, name, KeyPair(t, id))
}
