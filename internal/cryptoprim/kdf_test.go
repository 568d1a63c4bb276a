package cryptoprim

import (
	"bytes"
	"testing"
)

func TestDeriveMasterKey_Argon2_DeterministicForSameInputs(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, 16)

	mk1, algo1 := DeriveMasterKey("correct horse battery staple", salt, true)
	mk2, algo2 := DeriveMasterKey("correct horse battery staple", salt, true)

	if len(mk1) != MasterKeyLen {
		t.Fatalf("master key length = %d, want %d", len(mk1), MasterKeyLen)
	}
	if !bytes.Equal(mk1, mk2) {
		t.Fatalf("expected deterministic master key for identical inputs")
	}
	if algo1 != KDFArgon2id || algo2 != KDFArgon2id {
		t.Fatalf("expected KDFArgon2id, got %v / %v", algo1, algo2)
	}
}

func TestDeriveMasterKey_PBKDF2_DeterministicForSameInputs(t *testing.T) {
	salt := bytes.Repeat([]byte{0xCD}, 16)

	mk1, algo1 := DeriveMasterKey("same password", salt, false)
	mk2, algo2 := DeriveMasterKey("same password", salt, false)

	if len(mk1) != MasterKeyLen {
		t.Fatalf("master key length = %d, want %d", len(mk1), MasterKeyLen)
	}
	if !bytes.Equal(mk1, mk2) {
		t.Fatalf("expected deterministic master key for identical inputs")
	}
	if algo1 != KDFPBKDF2 || algo2 != KDFPBKDF2 {
		t.Fatalf("expected KDFPBKDF2, got %v / %v", algo1, algo2)
	}
}

func TestDeriveMasterKey_DifferentSaltProducesDifferentKey(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, 16)
	salt2 := bytes.Repeat([]byte{0x02}, 16)

	mk1, _ := DeriveMasterKey("same password", salt1, true)
	mk2, _ := DeriveMasterKey("same password", salt2, true)

	if bytes.Equal(mk1, mk2) {
		t.Fatalf("expected different master keys for different salts")
	}
}

func TestDeriveMasterKey_ArgonAndPBKDF2Differ(t *testing.T) {
	salt := bytes.Repeat([]byte{0x03}, 16)

	argonMK, _ := DeriveMasterKey("same password", salt, true)
	pbkdf2MK, _ := DeriveMasterKey("same password", salt, false)

	if bytes.Equal(argonMK, pbkdf2MK) {
		t.Fatalf("expected Argon2id and PBKDF2 to produce different keys")
	}
}

func TestDeriveMasterKeyWithAlgorithm_MatchesDirectDerivation(t *testing.T) {
	salt := bytes.Repeat([]byte{0x05}, 16)

	direct, algo := DeriveMasterKey("p@ssw0rd", salt, true)
	viaAlgo, err := DeriveMasterKeyWithAlgorithm("p@ssw0rd", salt, algo)
	if err != nil {
		t.Fatalf("DeriveMasterKeyWithAlgorithm error: %v", err)
	}
	if !bytes.Equal(direct, viaAlgo) {
		t.Fatalf("expected matching master keys across derivation paths")
	}
}

func TestDeriveMasterKeyWithAlgorithm_UnknownAlgorithmFails(t *testing.T) {
	salt := bytes.Repeat([]byte{0x06}, 16)
	if _, err := DeriveMasterKeyWithAlgorithm("pw", salt, KDFAlgorithm("bcrypt")); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestDeriveWrapKey_DeterministicAndCorrectLength(t *testing.T) {
	mk := bytes.Repeat([]byte{0x09}, 32)

	wk1, err := DeriveWrapKey(mk, WrapKeyInfo)
	if err != nil {
		t.Fatalf("DeriveWrapKey error: %v", err)
	}
	wk2, err := DeriveWrapKey(mk, WrapKeyInfo)
	if err != nil {
		t.Fatalf("DeriveWrapKey error: %v", err)
	}

	if len(wk1) != MasterKeyLen {
		t.Fatalf("wrap key length = %d, want %d", len(wk1), MasterKeyLen)
	}
	if !bytes.Equal(wk1, wk2) {
		t.Fatalf("expected deterministic wrap key for the same master key and info")
	}
}

func TestDeriveWrapKey_DifferentInfoProducesDifferentKey(t *testing.T) {
	mk := bytes.Repeat([]byte{0x0A}, 32)

	wk1, err := DeriveWrapKey(mk, "vault-wrap-key")
	if err != nil {
		t.Fatalf("DeriveWrapKey error: %v", err)
	}
	wk2, err := DeriveWrapKey(mk, "other-context")
	if err != nil {
		t.Fatalf("DeriveWrapKey error: %v", err)
	}

	if bytes.Equal(wk1, wk2) {
		t.Fatalf("expected different wrap keys for different info strings")
	}
}
