// Package token mints and parses the opaque bearer tokens embedded in tender
// invitation links. Every codec embeds the issuance timestamp in the token;
// expiry is always recomputed from that timestamp, never read from storage.
package token

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrMalformed is returned when a token does not match the codec's format.
var ErrMalformed = errors.New("malformed invitation token")

// Codec is the pluggable token scheme. Mint must never produce the same
// token twice in practice; collisions are treated as programming errors by
// the store.
type Codec interface {
	// Mint produces a new token carrying the given issuance time.
	Mint(issuedAt time.Time) (string, error)

	// IssuedAt extracts the issuance time embedded in the token, or
	// ErrMalformed when the token does not match the codec's format.
	IssuedAt(token string) (time.Time, error)
}

const prefix = "TND"

const segmentAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// 36^6 gives just over 31 bits per segment.
const segmentLength = 6

var legacyPattern = regexp.MustCompile(`^TND-(\d{13})-[a-z0-9]{6}-[a-z0-9]{6}$`)

// LegacyCodec reproduces the original link scheme: prefix, millisecond epoch
// timestamp and two pseudo-random alphanumeric segments. The segments are
// unsigned and not cryptographically strong; this is a known weakness of the
// scheme, kept for link compatibility. New deployments should prefer
// OpaqueCodec.
type LegacyCodec struct{}

func NewLegacyCodec() *LegacyCodec {
	return &LegacyCodec{}
}

func (c *LegacyCodec) Mint(issuedAt time.Time) (string, error) {
	return fmt.Sprintf("%s-%013d-%s-%s",
		prefix, issuedAt.UnixMilli(), randomSegment(), randomSegment()), nil
}

func (c *LegacyCodec) IssuedAt(token string) (time.Time, error) {
	m := legacyPattern.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, ErrMalformed
	}
	millis, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, ErrMalformed
	}
	return time.UnixMilli(millis), nil
}

func randomSegment() string {
	b := make([]byte, segmentLength)
	for i := range b {
		b[i] = segmentAlphabet[rand.IntN(len(segmentAlphabet))]
	}
	return string(b)
}

var opaquePattern = regexp.MustCompile(
	`^TND-(\d{13})-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// OpaqueCodec keeps the timestamp-bearing envelope but draws the random part
// from a v4 UUID, so tokens cannot be guessed from the issuance time alone.
type OpaqueCodec struct{}

func NewOpaqueCodec() *OpaqueCodec {
	return &OpaqueCodec{}
}

func (c *OpaqueCodec) Mint(issuedAt time.Time) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate token randomness: %w", err)
	}
	return fmt.Sprintf("%s-%013d-%s", prefix, issuedAt.UnixMilli(), id.String()), nil
}

func (c *OpaqueCodec) IssuedAt(token string) (time.Time, error) {
	m := opaquePattern.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, ErrMalformed
	}
	millis, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, ErrMalformed
	}
	return time.UnixMilli(millis), nil
}

// ForName returns the codec selected by configuration.
func ForName(name string) (Codec, error) {
	switch name {
	case "legacy":
		return NewLegacyCodec(), nil
	case "opaque":
		return NewOpaqueCodec(), nil
	default:
		return nil, fmt.Errorf("unknown token codec %q", name)
	}
}
