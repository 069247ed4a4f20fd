/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package envelope

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeyDerivation names how the AES-256 key is obtained from the shared key.
type KeyDerivation string

const (
	// KeyDerivationDirect uses the 32-byte ML-KEM shared key as the AES key.
	KeyDerivationDirect KeyDerivation = "direct"
	// KeyDerivationHKDFSHA256 expands the shared key with HKDF-SHA256, salted
	// with the KEM ciphertext.
	KeyDerivationHKDFSHA256 KeyDerivation = "hkdf-sha256"
)

var hkdfInfo = []byte("sentinel envelope aes-256-gcm v1")

// ErrUnknownKeyDerivation is returned for an unrecognised derivation name.
var ErrUnknownKeyDerivation = errors.New("envelope: unknown key derivation")

// ParseKeyDerivation maps a configuration value to a KeyDerivation. Empty
// selects KeyDerivationDirect.
func ParseKeyDerivation(s string) (KeyDerivation, error) {
	switch KeyDerivation(s) {
	case "", KeyDerivationDirect:
		return KeyDerivationDirect, nil
	case KeyDerivationHKDFSHA256:
		return KeyDerivationHKDFSHA256, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKeyDerivation, s)
	}
}

func deriveKey(kd KeyDerivation, sharedKey, kemCiphertext []byte) ([]byte, error) {
	switch kd {
	case "", KeyDerivationDirect:
		return append([]byte(nil), sharedKey...), nil
	case KeyDerivationHKDFSHA256:
		key := make([]byte, keyLength)
		if _, err := io.ReadFull(hkdf.New(sha256.New, sharedKey, kemCiphertext, hkdfInfo), key); err != nil {
			return nil, err
		}

		return key, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyDerivation, kd)
	}
}
