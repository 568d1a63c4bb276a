// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "flag"

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-index-dsn path to the SQLite index database
//	-blobs-dir root directory of the content-addressed blob store
//	-use-argon2 whether to use Argon2id instead of PBKDF2 for key derivation
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var indexDSN string
	var blobsDir string
	var useArgon2 bool
	var useArgon2Set boolFlagSeen
	var jsonConfigPath string

	flag.StringVar(&indexDSN, "index-dsn", "", "Path to the SQLite index database")
	flag.StringVar(&blobsDir, "blobs-dir", "", "Root directory of the content-addressed blob store")
	flag.Var(&useArgon2Set, "use-argon2", "Use Argon2id (true) or PBKDF2-HMAC-SHA256 (false) for key derivation")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	var useArgon2Ptr *bool
	if useArgon2Set.seen {
		useArgon2 = useArgon2Set.value
		useArgon2Ptr = &useArgon2
	}

	return &StructuredConfig{
		Vault: Vault{
			IndexDSN:  indexDSN,
			BlobsDir:  blobsDir,
			UseArgon2: useArgon2Ptr,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// boolFlagSeen implements flag.Value for a tri-state boolean flag: it
// distinguishes "flag not passed" from an explicit "-use-argon2=false" so
// that the merge chain in [configBuilder.build] can fall through to lower
// precedence sources (and ultimately the default) only when the flag was
// never supplied.
type boolFlagSeen struct {
	value bool
	seen  bool
}

func (b *boolFlagSeen) String() string {
	if !b.seen {
		return ""
	}
	if b.value {
		return "true"
	}
	return "false"
}

func (b *boolFlagSeen) Set(s string) error {
	switch s {
	case "true", "1":
		b.value = true
	case "false", "0":
		b.value = false
	default:
		return errInvalidBoolFlag
	}
	b.seen = true
	return nil
}

func (b *boolFlagSeen) IsBoolFlag() bool { return true }
