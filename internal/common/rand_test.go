package common

import (
	"encoding/hex"
	"testing"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("not valid hex: %v", err)
	}

	s2, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == s2 {
		t.Fatal("two generated strings should not be equal")
	}
}
