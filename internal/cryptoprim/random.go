// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cryptoprim

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// RandomBytes draws n cryptographically random bytes from the OS CSPRNG.
// Used for vault salts and DEKs — never seeded from user input.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("cryptoprim: read random bytes: %w", err)
	}
	return buf, nil
}

const (
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{}<>?/"

	// MinPasswordLength is the shortest length [GeneratePassword] accepts.
	MinPasswordLength = 8
)

var allClasses = []string{uppercase, lowercase, digits, symbols}

// GeneratePassword produces a cryptographically random password of the
// requested length. It guarantees at least one uppercase ASCII letter, one
// lowercase letter, one digit, and one symbol from the set
// "!@#$%^&*()-_=+[]{}<>?/"; the remaining characters are filled uniformly
// from the union of all four classes. The resulting character slice is then
// shuffled with a cryptographically uniform Fisher-Yates shuffle so the
// guaranteed characters are not predictably placed at the front.
//
// Returns [ErrInvalidLength] if length is below [MinPasswordLength].
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("%w: length %d is below minimum %d", ErrInvalidLength, length, MinPasswordLength)
	}

	union := uppercase + lowercase + digits + symbols
	chars := make([]byte, length)

	for i, class := range allClasses {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars[i] = c
	}

	for i := len(allClasses); i < length; i++ {
		c, err := randomChar(union)
		if err != nil {
			return "", err
		}
		chars[i] = c
	}

	if err := secureShuffle(chars); err != nil {
		return "", err
	}

	return string(chars), nil
}

func randomChar(class string) (byte, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(class))))
	if err != nil {
		return 0, fmt.Errorf("cryptoprim: random char: %w", err)
	}
	return class[idx.Int64()], nil
}

// secureShuffle performs an in-place Fisher-Yates shuffle of b using the OS
// CSPRNG for each swap index, producing a cryptographically uniform
// permutation.
func secureShuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("cryptoprim: shuffle: %w", err)
		}
		b[i], b[j.Int64()] = b[j.Int64()], b[i]
	}
	return nil
}
