// Package secure implements the reversible obfuscation applied to the
// customer-name column. One codec instance is shared by every call site so the
// scheme cannot drift between the cashier and admin paths.
package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ObfuscationError wraps an encode/decode failure, e.g. a key mismatch or
// corrupted ciphertext.
type ObfuscationError struct {
	Op  string
	Err error
}

func (e *ObfuscationError) Error() string {
	return fmt.Sprintf("obfuscation %s: %v", e.Op, e.Err)
}

func (e *ObfuscationError) Unwrap() error { return e.Err }

// Codec encrypts and decrypts short strings with AES-256-GCM. The key is
// derived from the configured secret; nothing is embedded in source.
type Codec struct {
	aead cipher.AEAD
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("secure: empty secret")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// Encrypt seals plain under a fresh nonce and returns base64(nonce || sealed).
func (c *Codec) Encrypt(plain string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", &ObfuscationError{Op: "encrypt", Err: err}
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any tampering or key mismatch fails the GCM tag
// check and comes back as an *ObfuscationError.
func (c *Codec) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &ObfuscationError{Op: "decrypt", Err: err}
	}
	if len(raw) < c.aead.NonceSize() {
		return "", &ObfuscationError{Op: "decrypt", Err: errors.New("ciphertext too short")}
	}
	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &ObfuscationError{Op: "decrypt", Err: err}
	}
	return string(plain), nil
}
