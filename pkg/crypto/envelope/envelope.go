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

// Package envelope seals violation reports for a receiver holding an ML-KEM-768
// decapsulation key.
//
// Wire format, base64 (standard alphabet) encoded:
//
//	kem ciphertext (1088 bytes) || nonce (12 bytes) || AES-256-GCM ciphertext+tag
//
// Both leading parts have fixed lengths so the payload splits without a length
// prefix. Every Seal call encapsulates a fresh shared key and draws a fresh nonce.
package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/mlkem"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// KEMCiphertextSize is the length of the encapsulated shared key.
	KEMCiphertextSize = mlkem.CiphertextSize768
	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16

	keyLength = mlkem.SharedKeySize
)

var (
	// ErrSealFailed wraps every failure that prevents a complete envelope from
	// being produced. No partial payload is ever returned alongside it.
	ErrSealFailed = errors.New("envelope: seal failed")
	// ErrOpenFailed wraps decapsulation and authentication failures.
	ErrOpenFailed = errors.New("envelope: open failed")
	// ErrEnvelopeTooShort indicates a payload shorter than its fixed-size parts.
	ErrEnvelopeTooShort = errors.New("envelope: payload too short")
	// ErrNilKey is returned when a Sealer or Opener is built without a key.
	ErrNilKey = errors.New("envelope: key is nil")

	errSharedKeyLength  = errors.New("unexpected shared key length")
	errKEMCiphertextLen = errors.New("unexpected kem ciphertext length")
)

// Encapsulator produces a fresh shared key and its ciphertext on every call.
// *mlkem.EncapsulationKey768 satisfies it.
type Encapsulator interface {
	Encapsulate() (sharedKey, ciphertext []byte)
}

// Decapsulator recovers a shared key from its ciphertext.
// *mlkem.DecapsulationKey768 satisfies it.
type Decapsulator interface {
	Decapsulate(ciphertext []byte) (sharedKey []byte, err error)
}

// Option configures a Sealer or an Opener.
type Option func(*options)

type options struct {
	derivation KeyDerivation
	rand       io.Reader
}

// WithKeyDerivation selects how the AES key is derived from the shared key.
// Sealer and Opener must agree.
func WithKeyDerivation(kd KeyDerivation) Option {
	return func(o *options) {
		o.derivation = kd
	}
}

// WithRand overrides the nonce source.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{derivation: KeyDerivationDirect, rand: rand.Reader}
	for _, opt := range opts {
		opt(o)
	}

	if _, err := ParseKeyDerivation(string(o.derivation)); err != nil {
		return nil, err
	}

	return o, nil
}

// Sealer encrypts reports against a long-lived receiver key. It holds no
// per-message state and is safe for concurrent use.
type Sealer struct {
	ek         Encapsulator
	derivation KeyDerivation
	rand       io.Reader
}

// NewSealer constructs a Sealer for the receiver's encapsulation key.
func NewSealer(ek Encapsulator, opts ...Option) (*Sealer, error) {
	if ek == nil {
		return nil, ErrNilKey
	}

	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Sealer{ek: ek, derivation: o.derivation, rand: o.rand}, nil
}

// KeyDerivation reports the derivation the sealer applies.
func (s *Sealer) KeyDerivation() KeyDerivation {
	return s.derivation
}

// Seal returns the text-encoded envelope for plaintext.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	sharedKey, kemCiphertext := s.ek.Encapsulate()
	defer clear(sharedKey)

	if len(sharedKey) != keyLength {
		return "", fmt.Errorf("%w: %w: %d", ErrSealFailed, errSharedKeyLength, len(sharedKey))
	}

	if len(kemCiphertext) != KEMCiphertextSize {
		return "", fmt.Errorf("%w: %w: %d", ErrSealFailed, errKEMCiphertextLen, len(kemCiphertext))
	}

	key, err := deriveKey(s.derivation, sharedKey, kemCiphertext)
	if err != nil {
		return "", fmt.Errorf("%w: derive key: %w", ErrSealFailed, err)
	}
	defer clear(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSealFailed, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(s.rand, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %w", ErrSealFailed, err)
	}

	payload := make([]byte, 0, KEMCiphertextSize+NonceSize+len(plaintext)+gcm.Overhead())
	payload = append(payload, kemCiphertext...)
	payload = append(payload, nonce...)
	payload = gcm.Seal(payload, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(payload), nil
}

// Opener is the receiver side of the wire format.
type Opener struct {
	dk         Decapsulator
	derivation KeyDerivation
}

// NewOpener constructs an Opener around the receiver's decapsulation key.
func NewOpener(dk Decapsulator, opts ...Option) (*Opener, error) {
	if dk == nil {
		return nil, ErrNilKey
	}

	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Opener{dk: dk, derivation: o.derivation}, nil
}

// Open decodes and decrypts an envelope produced by Seal.
func (o *Opener) Open(encoded string) ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("envelope: decode payload: %w", err)
	}

	kemCiphertext, nonce, sealed, err := Split(payload)
	if err != nil {
		return nil, err
	}

	sharedKey, err := o.dk.Decapsulate(kemCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decapsulate: %w", ErrOpenFailed, err)
	}
	defer clear(sharedKey)

	key, err := deriveKey(o.derivation, sharedKey, kemCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: derive key: %w", ErrOpenFailed, err)
	}
	defer clear(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return plaintext, nil
}

// Split separates a decoded payload into its three parts. The returned slices
// alias payload.
func Split(payload []byte) (kemCiphertext, nonce, sealed []byte, err error) {
	if len(payload) < KEMCiphertextSize+NonceSize+TagSize {
		return nil, nil, nil, fmt.Errorf("%w: %d bytes", ErrEnvelopeTooShort, len(payload))
	}

	kemCiphertext = payload[:KEMCiphertextSize]
	nonce = payload[KEMCiphertextSize : KEMCiphertextSize+NonceSize]
	sealed = payload[KEMCiphertextSize+NonceSize:]

	return kemCiphertext, nonce, sealed, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}

	return gcm, nil
}
