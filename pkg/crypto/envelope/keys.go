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
	"crypto/mlkem"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidKey indicates key material that does not decode to an ML-KEM-768 key.
var ErrInvalidKey = errors.New("envelope: invalid ML-KEM-768 key")

// GenerateKeyPair creates a receiver keypair. The encapsulation key is
// dk.EncapsulationKey().
func GenerateKeyPair() (*mlkem.DecapsulationKey768, error) {
	dk, err := mlkem.GenerateKey768()
	if err != nil {
		return nil, fmt.Errorf("envelope: generate key: %w", err)
	}

	return dk, nil
}

// ParseEncapsulationKey decodes a base64 encapsulation key as published by a receiver.
func ParseEncapsulationKey(encoded string) (*mlkem.EncapsulationKey768, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	ek, err := mlkem.NewEncapsulationKey768(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return ek, nil
}

// EncodeEncapsulationKey is the inverse of ParseEncapsulationKey.
func EncodeEncapsulationKey(ek *mlkem.EncapsulationKey768) string {
	return base64.StdEncoding.EncodeToString(ek.Bytes())
}

// ParseDecapsulationKey decodes a base64 64-byte decapsulation key seed.
func ParseDecapsulationKey(encoded string) (*mlkem.DecapsulationKey768, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	dk, err := mlkem.NewDecapsulationKey768(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	return dk, nil
}

// EncodeDecapsulationKey encodes the seed form of dk.
func EncodeDecapsulationKey(dk *mlkem.DecapsulationKey768) string {
	return base64.StdEncoding.EncodeToString(dk.Bytes())
}
