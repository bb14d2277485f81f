package directory

import (
	"fmt"

	"gorm.io/gorm"
)

// Default parameter values applied when a node does not override them.
const (
	// DefaultSaltLength is the length of the random salt string.
	DefaultSaltLength = 64
	// DefaultHashIterations is the PBKDF2 iteration count.
	DefaultHashIterations = 10
	// DefaultKeyLength is the derived key length in bits.
	DefaultKeyLength = 256
	// DefaultAlgorithm is the default credential hash algorithm.
	DefaultAlgorithm = AlgorithmPBKDF2SHA512
)

// Config holds the per-node parameters an accessor bundle is built from.
// It is read once at build time and never mutated afterwards.
type Config struct {
	// SaltLength is the length of the random salt string generated when a
	// credential is written.
	SaltLength int
	// HashIterations is the PBKDF2 iteration count.
	HashIterations int
	// KeyLength is the derived key length in bits.
	KeyLength int
	// Algorithm is the credential hash algorithm name.
	Algorithm string
	// BaseDN is the root of the directory tree for this node.
	BaseDN string
}

// Bundle groups the user, group and company accessors built for one
// node. All callers of the same node share one Bundle instance until it
// is invalidated; invalidation replaces the Bundle wholesale.
type Bundle struct {
	// Users is the user accessor.
	Users *UserRepository
	// Groups is the group accessor.
	Groups *GroupRepository
	// Companies is the company accessor.
	Companies *CompanyRepository
}

// New builds the accessor bundle for a node. Construction is pure: no
// queries are issued and no state is shared with other bundles.
func New(db *gorm.DB, cfg Config) (*Bundle, error) {
	if cfg.SaltLength <= 0 {
		cfg.SaltLength = DefaultSaltLength
	}

	if cfg.HashIterations <= 0 {
		cfg.HashIterations = DefaultHashIterations
	}

	if cfg.KeyLength <= 0 {
		cfg.KeyLength = DefaultKeyLength
	}

	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}

	if cfg.BaseDN != "" && !ValidDN(cfg.BaseDN) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseDN, cfg.BaseDN)
	}

	hasher, err := newHasher(cfg)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Users:     &UserRepository{db: db, cfg: cfg, hasher: hasher},
		Groups:    &GroupRepository{db: db, cfg: cfg},
		Companies: &CompanyRepository{db: db, cfg: cfg},
	}, nil
}
