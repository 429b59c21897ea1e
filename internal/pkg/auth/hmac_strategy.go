package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTokenTTL = 24 * time.Hour

// HMACStrategy issues and verifies dot-separated tokens of the form
// "<userID>.<expiresUnix>.<signature>" where the signature is an
// HMAC-SHA256 over the first two segments.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates signed auth token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := strconv.FormatInt(userID, 10) + "." + strconv.FormatInt(expires, 10)
	return payload + "." + encodeSignature(s.sign(payload)), nil
}

// ParseToken validates token and returns encoded user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	payload, sig, ok := splitToken(token)
	if !ok {
		return 0, ErrInvalidToken
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil || !hmac.Equal(s.sign(payload), got) {
		return 0, ErrInvalidToken
	}

	idPart, expPart, _ := strings.Cut(payload, ".")
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(expPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if s.now().Unix() >= expires {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}

func encodeSignature(sig []byte) string {
	return base64.RawURLEncoding.EncodeToString(sig)
}

// splitToken separates the signed payload from the trailing signature
// segment. Payload keeps its internal dot so the signature covers both
// the user ID and the expiry.
func splitToken(token string) (payload, sig string, ok bool) {
	idx := strings.LastIndexByte(token, '.')
	if idx <= 0 || idx == len(token)-1 {
		return "", "", false
	}
	payload = token[:idx]
	if strings.Count(payload, ".") != 1 {
		return "", "", false
	}
	return payload, token[idx+1:], true
}
