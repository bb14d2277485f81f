package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	db := setupTestDB(t)

	bundle, err := New(db, Config{BaseDN: "dc=sample,dc=com"})
	require.NoError(t, err)

	assert.Equal(t, DefaultSaltLength, bundle.Users.cfg.SaltLength)
	assert.Equal(t, DefaultHashIterations, bundle.Users.cfg.HashIterations)
	assert.Equal(t, DefaultKeyLength, bundle.Users.cfg.KeyLength)
	assert.Equal(t, DefaultAlgorithm, bundle.Users.cfg.Algorithm)
}

func TestNewRejectsInvalidBaseDN(t *testing.T) {
	db := setupTestDB(t)

	bundle, err := New(db, Config{BaseDN: "sample com"})
	require.ErrorIs(t, err, ErrInvalidBaseDN)
	assert.Nil(t, bundle)
}
