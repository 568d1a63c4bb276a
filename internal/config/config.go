// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level configuration container for
// vaultkeeper-core. It aggregates the vault's storage locations and KDF
// choice and is populated by merging values from environment variables,
// command-line flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Vault holds the storage locations and KDF configuration for the
	// record engine.
	Vault Vault `envPrefix:"VAULT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Vault holds the on-disk locations and cryptographic configuration used by
// internal/vault.Engine.
type Vault struct {
	// IndexDSN is the path to the SQLite index database.
	// Env: VAULT_INDEX_DSN. Default: "./index.sqlite".
	IndexDSN string `env:"INDEX_DSN"`

	// BlobsDir is the root directory of the content-addressed blob store.
	// Env: VAULT_BLOBS_DIR. Default: "./blobs/sha256".
	BlobsDir string `env:"BLOBS_DIR"`

	// UseArgon2 selects Argon2id (true) or PBKDF2-HMAC-SHA256 (false) for
	// master-key derivation on a brand-new vault. Once a vault has been
	// unlocked for the first time, the chosen algorithm is persisted in the
	// index's meta table and this field is ignored on subsequent opens — see
	// internal/vault's KDF algorithm agility handling.
	// A nil value means "unspecified"; [GetConfig] defaults it to true.
	// Env: VAULT_USE_ARGON2. Default: true.
	UseArgon2 *bool `env:"USE_ARGON2"`
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the priority order documented on the config
// package. Returns a fully populated *StructuredConfig or an error if any
// source fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
