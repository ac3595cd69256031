package token

import (
	"errors"
	"testing"
	"time"
)

func TestLegacyCodec_MintAndParse(t *testing.T) {
	codec := NewLegacyCodec()
	issued := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tok, err := codec.Mint(issued)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	got, err := codec.IssuedAt(tok)
	if err != nil {
		t.Fatalf("IssuedAt(%q) error = %v", tok, err)
	}
	if !got.Equal(issued) {
		t.Errorf("IssuedAt(%q) = %v, want %v", tok, got, issued)
	}
}

func TestLegacyCodec_MintIsUnique(t *testing.T) {
	codec := NewLegacyCodec()
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok, err := codec.Mint(now)
		if err != nil {
			t.Fatalf("Mint() error = %v", err)
		}
		if seen[tok] {
			t.Fatalf("Mint() produced duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestLegacyCodec_RejectsMalformed(t *testing.T) {
	codec := NewLegacyCodec()
	malformed := []string{
		"",
		"TND",
		"TND-abc-def-ghi",
		"TND-1757836013000-abc-def",         // segments too short
		"XYZ-1757836013000-abcdef-ghijkl",    // wrong prefix
		"TND-1757836013000-ABCDEF-GHIJKL",    // uppercase segments
		"TND-1757836013000-abcdef",           // missing segment
		"tnd-1757836013000-abcdef-ghijkl",    // lowercase prefix
		"TND-175783601300-abcdef-ghijkl",     // 12-digit timestamp
	}
	for _, tok := range malformed {
		if _, err := codec.IssuedAt(tok); !errors.Is(err, ErrMalformed) {
			t.Errorf("IssuedAt(%q) error = %v, want ErrMalformed", tok, err)
		}
	}
}

func TestOpaqueCodec_MintAndParse(t *testing.T) {
	codec := NewOpaqueCodec()
	issued := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tok, err := codec.Mint(issued)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	got, err := codec.IssuedAt(tok)
	if err != nil {
		t.Fatalf("IssuedAt(%q) error = %v", tok, err)
	}
	if !got.Equal(issued) {
		t.Errorf("IssuedAt(%q) = %v, want %v", tok, got, issued)
	}
}

func TestOpaqueCodec_RejectsLegacyTokens(t *testing.T) {
	legacy := NewLegacyCodec()
	opaque := NewOpaqueCodec()

	tok, err := legacy.Mint(time.Now())
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	if _, err := opaque.IssuedAt(tok); !errors.Is(err, ErrMalformed) {
		t.Errorf("opaque IssuedAt(legacy token) error = %v, want ErrMalformed", err)
	}
}

func TestForName(t *testing.T) {
	if _, err := ForName("legacy"); err != nil {
		t.Errorf("ForName(legacy) error = %v", err)
	}
	if _, err := ForName("opaque"); err != nil {
		t.Errorf("ForName(opaque) error = %v", err)
	}
	if _, err := ForName("hmac"); err == nil {
		t.Error("ForName(hmac) expected error, got nil")
	}
}
