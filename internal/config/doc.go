// Package config provides configuration loading, merging, and validation
// facilities for vaultkeeper-core.
//
// Configuration is assembled from multiple sources, merged with the first
// non-zero value found winning (mergo.Merge default semantics: the builder
// appends sources in precedence order and each subsequent source only fills
// in fields still at their zero value):
//  1. Environment variables (highest precedence)
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults (lowest precedence — always fills any field still
//     unset after the three sources above)
//
// The entry point is [GetConfig].
package config
