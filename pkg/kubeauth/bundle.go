package kubeauth

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Bundle is the authentication material resolved from a kubeconfig: the API
// server URL, optional client certificate, key and CA, and the skip-verify
// flag.
//
// A Bundle is live until SecureCleanup runs or it expires. A retired bundle is
// never revived; resolving again yields a new one. The byte slices returned by
// the accessors are owned by the Bundle and are zeroed when it is cleaned up,
// so callers must not hold on to them past that point.
type Bundle struct {
	mu    sync.RWMutex
	clock clock.PassiveClock

	serverURL     string
	certificate   []byte
	privateKey    []byte
	caCertificate []byte
	skipVerify    bool

	expiresAt      time.Time
	lastAccessedAt time.Time
	cleaned        bool
}

func newBundle(
	serverURL string,
	certificate, privateKey, caCertificate []byte,
	skipVerify bool,
	clk clock.PassiveClock,
	ttl time.Duration,
) *Bundle {
	now := clk.Now()
	return &Bundle{
		clock:          clk,
		serverURL:      serverURL,
		certificate:    certificate,
		privateKey:     privateKey,
		caCertificate:  caCertificate,
		skipVerify:     skipVerify,
		expiresAt:      now.Add(ttl),
		lastAccessedAt: now,
	}
}

func (b *Bundle) ServerURL() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.serverURL
}

// Certificate returns the PEM client certificate, or nil if there is none or
// the bundle was cleaned up.
func (b *Bundle) Certificate() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.certificate
}

func (b *Bundle) PrivateKey() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.privateKey
}

func (b *Bundle) CACertificate() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.caCertificate
}

// SkipVerify reports whether server certificate validation is disabled.
func (b *Bundle) SkipVerify() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.skipVerify
}

func (b *Bundle) ExpiresAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expiresAt
}

func (b *Bundle) LastAccessedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastAccessedAt
}

// IsExpired reports whether the bundle is past its expiry time, as told by the
// clock of the resolver that created it.
func (b *Bundle) IsExpired() bool {
	return b.isExpiredAt(b.clock.Now())
}

func (b *Bundle) isExpiredAt(now time.Time) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return now.After(b.expiresAt)
}

// IsRetired reports whether the bundle was cleaned up or has expired.
func (b *Bundle) IsRetired() bool {
	b.mu.RLock()
	cleaned := b.cleaned
	b.mu.RUnlock()
	return cleaned || b.IsExpired()
}

func (b *Bundle) touch(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if now.After(b.lastAccessedAt) {
		b.lastAccessedAt = now
	}
}

// SecureCleanup overwrites the certificate, key and CA buffers with zeros and
// drops them. Calling it again is a no-op.
func (b *Bundle) SecureCleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	zero(b.certificate)
	zero(b.privateKey)
	zero(b.caCertificate)
	b.certificate = nil
	b.privateKey = nil
	b.caCertificate = nil
	b.cleaned = true
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
