package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// deviceIDHeader carries the client-side fingerprint (the browser library's
// visitor id) when the client computes one itself.
const deviceIDHeader = "X-Device-ID"

const deviceIDKey = "device_id"

var errNoIdentity = errors.New("identity: no identifying material in request")

// IdentityProvider resolves a stable pseudo-identity per device. The header
// value wins when present; otherwise a fingerprint is derived from request
// attributes. Derived ids are cached per source so the hash is computed once
// per distinct client per process.
type IdentityProvider struct {
	mu    sync.Mutex
	cache map[string]string
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{cache: make(map[string]string)}
}

// DeviceID returns the device identifier for this request.
func (p *IdentityProvider) DeviceID(c *gin.Context) (string, error) {
	if id := strings.TrimSpace(c.GetHeader(deviceIDHeader)); id != "" {
		return id, nil
	}
	return p.fingerprint(c.ClientIP(), c.GetHeader("User-Agent"), c.GetHeader("Accept-Language"))
}

// fingerprint derives a heuristically stable identifier from client
// attributes. It is a pseudo-identity, not authentication.
func (p *IdentityProvider) fingerprint(ip, userAgent, acceptLanguage string) (string, error) {
	if ip == "" && userAgent == "" {
		return "", errNoIdentity
	}
	source := ip + "|" + userAgent + "|" + acceptLanguage

	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.cache[source]; ok {
		return id, nil
	}
	sum := sha256.Sum256([]byte(source))
	id := hex.EncodeToString(sum[:16])
	p.cache[source] = id
	return id, nil
}

// DeviceIdentity resolves the device id before gated handlers run. Failure is
// fatal to the request: no identity, no flow.
func DeviceIdentity(provider *IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := provider.DeviceID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "기기 식별에 실패했습니다."})
			return
		}
		c.Set(deviceIDKey, id)
		c.Next()
	}
}

// requestDeviceID reads the id resolved by DeviceIdentity.
func requestDeviceID(c *gin.Context) string {
	return c.GetString(deviceIDKey)
}
