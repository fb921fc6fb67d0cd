// Package random provides identifier and token generation helpers.
//
// Record identifiers are ULIDs so storage keys stay lexicographically
// sortable. Share tokens come straight from crypto/rand: they gate public
// access on their own, so they must carry no timestamp component and no
// structure a caller could extrapolate from.
package random

import (
	crand "crypto/rand"
	"encoding/base64"
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// shareTokenBytes yields 32 url-safe characters after base64 encoding.
const shareTokenBytes = 24

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewID returns a lexicographically sortable identifier suitable for storage keys.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewShareToken returns an unguessable url-safe token for public share links.
func NewShareToken() (string, error) {
	raw := make([]byte, shareTokenBytes)
	if _, err := crand.Read(raw); err != nil {
		return "", fmt.Errorf("read share token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
