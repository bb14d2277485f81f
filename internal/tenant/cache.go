// Package tenant maintains the per-node directory accessor bundles.
//
// Building a bundle means reading the node parameters and constructing
// the directory repositories, which is expensive relative to the hot
// read path. The cache therefore guarantees "build once, read many":
// concurrent callers for the same node share a single in-flight build,
// different nodes build independently, and a failed build is never
// cached so the next caller retries from the current parameters.
package tenant

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/controller/node"
	"github.com/dirbridge/dirbridge/internal/directory"
)

// Node parameter names driving the accessor bundle construction.
const (
	// ParameterSaltLength is the salt string length parameter.
	ParameterSaltLength = "sql:salt-length"
	// ParameterHashIteration is the hash iteration count parameter.
	ParameterHashIteration = "sql:hash-iteration"
	// ParameterKeyLength is the derived key length parameter, in bits.
	ParameterKeyLength = "sql:key-length"
	// ParameterKeyAlg is the hash algorithm name parameter.
	ParameterKeyAlg = "sql:key-alg"
	// ParameterBaseDN is the base DN parameter, root of the node's tree.
	ParameterBaseDN = "sql:base-dn"
	// ParameterUIDPattern restricts which logins a node accepts.
	ParameterUIDPattern = "sql:uid-pattern"
)

// Cache owns the node to bundle mapping. No other component mutates it.
type Cache struct {
	db *gorm.DB

	mu      sync.RWMutex
	bundles map[string]*directory.Bundle
	group   singleflight.Group
}

// NewCache creates an empty cache reading node parameters from db.
func NewCache(db *gorm.DB) *Cache {
	return &Cache{
		db:      db,
		bundles: make(map[string]*directory.Bundle),
	}
}

// Get returns the accessor bundle of a node, building it on first
// access. All concurrent callers for one node observe the same Bundle
// instance; a build error is returned to every waiter and nothing is
// cached, so the caller may retry.
func (c *Cache) Get(nodeID string) (*directory.Bundle, error) {
	c.mu.RLock()
	bundle, ok := c.bundles[nodeID]
	c.mu.RUnlock()

	if ok {
		return bundle, nil
	}

	built, err, _ := c.group.Do(nodeID, func() (interface{}, error) {
		// Re-check under the flight: an earlier flight may have stored it.
		c.mu.RLock()
		cached, hit := c.bundles[nodeID]
		c.mu.RUnlock()

		if hit {
			return cached, nil
		}

		fresh, errBuild := c.build(nodeID)
		if errBuild != nil {
			return nil, errBuild
		}

		c.mu.Lock()
		c.bundles[nodeID] = fresh
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return built.(*directory.Bundle), nil
}

// Invalidate evicts the bundle of one node. The next Get rebuilds it
// from the current node parameters.
func (c *Cache) Invalidate(nodeID string) {
	c.mu.Lock()
	delete(c.bundles, nodeID)
	c.mu.Unlock()

	log.Info().Str("node", nodeID).Msg("evicted directory configuration")
}

// InvalidateAll evicts every cached bundle.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.bundles = make(map[string]*directory.Bundle)
	c.mu.Unlock()

	log.Info().Msg("evicted all directory configurations")
}

// Parameters reads the raw parameter map of a node.
func (c *Cache) Parameters(nodeID string) (map[string]string, error) {
	return node.GetParameters(c.db, nodeID)
}

// build reads the node parameters and constructs the bundle.
func (c *Cache) build(nodeID string) (*directory.Bundle, error) {
	log.Info().Str("node", nodeID).Msg("building directory configuration")

	parameters, err := node.GetParameters(c.db, nodeID)
	if err != nil {
		return nil, err
	}

	cfg := directory.Config{
		SaltLength:     intParameter(parameters, ParameterSaltLength, directory.DefaultSaltLength),
		HashIterations: intParameter(parameters, ParameterHashIteration, directory.DefaultHashIterations),
		KeyLength:      intParameter(parameters, ParameterKeyLength, directory.DefaultKeyLength),
		Algorithm:      stringParameter(parameters, ParameterKeyAlg, directory.DefaultAlgorithm),
		BaseDN:         parameters[ParameterBaseDN],
	}

	return directory.New(c.db, cfg)
}

func stringParameter(parameters map[string]string, name, fallback string) string {
	if value, ok := parameters[name]; ok && value != "" {
		return value
	}

	return fallback
}

func intParameter(parameters map[string]string, name string, fallback int) int {
	value, ok := parameters[name]
	if !ok || value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("parameter", name).Str("value", value).Msg("ignoring non-numeric parameter")
		return fallback
	}

	return parsed
}
