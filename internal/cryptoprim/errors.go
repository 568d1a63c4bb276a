// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cryptoprim

import "errors"

// ErrInvalidLength is returned by [GeneratePassword] when asked for a
// password shorter than [MinPasswordLength].
var ErrInvalidLength = errors.New("cryptoprim: invalid password length")
