// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keyring

import "errors"

// ErrLocked is returned by [Keyring.WrapDEK] and [Keyring.UnwrapDEK] when
// called before [Keyring.Unlock] or after [Keyring.Lock].
var ErrLocked = errors.New("keyring: locked")
