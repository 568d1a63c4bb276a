// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_RejectsEmptyIndexDSN(t *testing.T) {
	cfg := &StructuredConfig{Vault: Vault{BlobsDir: "/blobs"}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidVaultConfigs)
}

func TestValidate_RejectsEmptyBlobsDir(t *testing.T) {
	cfg := &StructuredConfig{Vault: Vault{IndexDSN: "/index.sqlite"}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidVaultConfigs)
}

func TestValidate_AcceptsFullyPopulated(t *testing.T) {
	cfg := &StructuredConfig{Vault: Vault{IndexDSN: "/index.sqlite", BlobsDir: "/blobs"}}
	assert.NoError(t, cfg.validate())
}

