package cryptoprim

import (
	"bytes"
	"strings"
	"testing"
)

func TestRandomBytes_LengthAndRandomness(t *testing.T) {
	b1, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes error: %v", err)
	}
	b2, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes error: %v", err)
	}

	if len(b1) != 16 || len(b2) != 16 {
		t.Fatalf("unexpected lengths: %d, %d", len(b1), len(b2))
	}
	if bytes.Equal(b1, b2) {
		t.Fatalf("expected distinct random byte slices")
	}
}

func TestGeneratePassword_RejectsShortLength(t *testing.T) {
	if _, err := GeneratePassword(7); err == nil {
		t.Fatalf("expected error for length below minimum")
	}
}

func TestGeneratePassword_CorrectLength(t *testing.T) {
	pw, err := GeneratePassword(20)
	if err != nil {
		t.Fatalf("GeneratePassword error: %v", err)
	}
	if len(pw) != 20 {
		t.Fatalf("password length = %d, want 20", len(pw))
	}
}

func TestGeneratePassword_ContainsAllCharacterClasses(t *testing.T) {
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword(MinPasswordLength)
		if err != nil {
			t.Fatalf("GeneratePassword error: %v", err)
		}

		if !strings.ContainsAny(pw, uppercase) {
			t.Fatalf("password %q missing uppercase letter", pw)
		}
		if !strings.ContainsAny(pw, lowercase) {
			t.Fatalf("password %q missing lowercase letter", pw)
		}
		if !strings.ContainsAny(pw, digits) {
			t.Fatalf("password %q missing digit", pw)
		}
		if !strings.ContainsAny(pw, symbols) {
			t.Fatalf("password %q missing symbol", pw)
		}
	}
}

func TestGeneratePassword_ProducesDistinctPasswords(t *testing.T) {
	p1, err := GeneratePassword(16)
	if err != nil {
		t.Fatalf("GeneratePassword error: %v", err)
	}
	p2, err := GeneratePassword(16)
	if err != nil {
		t.Fatalf("GeneratePassword error: %v", err)
	}

	if p1 == p2 {
		t.Fatalf("expected distinct passwords across calls")
	}
}

func TestGeneratePassword_MinimumLengthSucceeds(t *testing.T) {
	if _, err := GeneratePassword(MinPasswordLength); err != nil {
		t.Fatalf("GeneratePassword at minimum length failed: %v", err)
	}
}
