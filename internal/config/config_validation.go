// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// By the time validate runs, [configBuilder.withDefaults] has already
// supplied fallback values for IndexDSN, BlobsDir, and UseArgon2, so these
// checks should only ever fail if a caller bypasses [GetConfig] and builds a
// [StructuredConfig] by hand.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Vault.IndexDSN == "" || cfg.Vault.BlobsDir == "" {
		return ErrInvalidVaultConfigs
	}

	return nil
}
