package directory

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/pbkdf2"
)

// Supported credential hash algorithm names.
const (
	// AlgorithmPBKDF2SHA512 derives the key with PBKDF2 over HMAC-SHA512.
	AlgorithmPBKDF2SHA512 = "PBKDF2WithHmacSHA512"
	// AlgorithmPBKDF2SHA256 derives the key with PBKDF2 over HMAC-SHA256.
	AlgorithmPBKDF2SHA256 = "PBKDF2WithHmacSHA256"
	// AlgorithmArgon2id stores an encoded Argon2id hash. The salt is part of
	// the encoded hash, the node salt parameter is ignored.
	AlgorithmArgon2id = "Argon2id"
)

// hasher derives and verifies credential hashes for one node configuration.
type hasher interface {
	// Hash derives the stored form of a secret with a fresh salt.
	Hash(salt, secret string) (string, error)
	// Verify compares a presented secret against the stored hash.
	Verify(salt, storedHash, secret string) (bool, error)
}

// newHasher resolves the hasher for the configured algorithm name.
func newHasher(cfg Config) (hasher, error) {
	switch cfg.Algorithm {
	case AlgorithmPBKDF2SHA512:
		return pbkdf2Hasher{iterations: cfg.HashIterations, keyLength: cfg.KeyLength, newHash: sha512.New}, nil
	case AlgorithmPBKDF2SHA256:
		return pbkdf2Hasher{iterations: cfg.HashIterations, keyLength: cfg.KeyLength, newHash: sha256.New}, nil
	case AlgorithmArgon2id:
		return argon2idHasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}
}

// pbkdf2Hasher implements PBKDF2 key derivation. The derived key is hex
// encoded; the key length parameter is in bits.
type pbkdf2Hasher struct {
	iterations int
	keyLength  int
	newHash    func() hash.Hash
}

func (h pbkdf2Hasher) derive(salt, secret string) string {
	key := pbkdf2.Key([]byte(secret), []byte(salt), h.iterations, h.keyLength/8, h.newHash)
	return hex.EncodeToString(key)
}

// Hash derives the stored form of a secret.
func (h pbkdf2Hasher) Hash(salt, secret string) (string, error) {
	return h.derive(salt, secret), nil
}

// Verify recomputes the derived key and compares in constant time.
func (h pbkdf2Hasher) Verify(salt, storedHash, secret string) (bool, error) {
	derived := h.derive(salt, secret)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(storedHash)) == 1, nil
}

// argon2idHasher delegates to the argon2id encoded-hash format. The salt
// argument is unused since the encoded hash embeds its own salt.
type argon2idHasher struct{}

// Hash creates an encoded Argon2id hash with the default parameters.
func (argon2idHasher) Hash(_ string, secret string) (string, error) {
	encoded, err := argon2id.CreateHash(secret, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return encoded, nil
}

// Verify compares the secret against the encoded hash.
func (argon2idHasher) Verify(_ string, storedHash, secret string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(secret, storedHash)
	if err != nil {
		return false, fmt.Errorf("failed to verify secret: %w", err)
	}

	return match, nil
}
