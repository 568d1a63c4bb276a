package cryptoprim

import (
	"bytes"
	"testing"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	plaintext := []byte("identity payload bytes")

	blob, err := Seal(key, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if len(blob) != len(plaintext)+NonceSize+16 {
		t.Fatalf("blob length = %d, want %d", len(blob), len(plaintext)+NonceSize+16)
	}

	got, err := Open(key, blob, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestSeal_DistinctNoncesPerCall(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	plaintext := []byte("same plaintext")

	b1, err := Seal(key, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	b2, err := Seal(key, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(b1, b2) {
		t.Fatalf("expected distinct ciphertexts for repeated Seal calls")
	}
	if bytes.Equal(b1[:NonceSize], b2[:NonceSize]) {
		t.Fatalf("expected distinct nonces for repeated Seal calls")
	}
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	wrongKey := bytes.Repeat([]byte{0x02}, 32)

	blob, err := Seal(key, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if _, err := Open(wrongKey, blob, nil); err == nil {
		t.Fatalf("expected Open with wrong key to fail")
	}
}

func TestOpen_MismatchedAADFails(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)

	blob, err := Seal(key, []byte("secret"), []byte("aad-one"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if _, err := Open(key, blob, []byte("aad-two")); err == nil {
		t.Fatalf("expected Open with mismatched AAD to fail")
	}
}

func TestOpen_MatchingAADSucceeds(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	aad := []byte("item-id-bytes")

	blob, err := Seal(key, []byte("secret"), aad)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	got, err := Open(key, blob, aad)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if string(got) != "secret" {
		t.Fatalf("got %q, want %q", got, "secret")
	}
}

func TestOpen_TruncatedBlobFails(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	if _, err := Open(key, []byte{0x01, 0x02}, nil); err == nil {
		t.Fatalf("expected Open on truncated blob to fail")
	}
}

func TestSeal_InvalidKeyLengthFails(t *testing.T) {
	if _, err := Seal([]byte("too-short"), []byte("data"), nil); err == nil {
		t.Fatalf("expected Seal with invalid key length to fail")
	}
}
