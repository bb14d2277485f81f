package node

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Node{}, &models.NodeParameter{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedNode inserts a node with its parameters.
func seedNode(t *testing.T, db *gorm.DB, id string, parameters map[string]string) {
	t.Helper()

	node := models.Node{ID: id, Name: id}
	require.NoError(t, db.Create(&node).Error, "failed to seed node")

	for name, value := range parameters {
		row := models.NodeParameter{NodeID: id, Name: name, Value: value}
		require.NoError(t, db.Create(&row).Error, "failed to seed node parameter")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	seedNode(t, db, "service:id:sql:local", nil)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		nodeID        string
		expectedError error
	}{
		{name: "nil database", dbParam: nil, nodeID: "service:id:sql:local", expectedError: ErrDBNil},
		{name: "empty identifier", dbParam: db, nodeID: "", expectedError: ErrNodeIDEmpty},
		{name: "node not found", dbParam: db, nodeID: "service:id:sql:other", expectedError: ErrNodeNotFound},
		{name: "successful get", dbParam: db, nodeID: "service:id:sql:local"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := Get(tc.dbParam, tc.nodeID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, node)
			} else {
				require.NoError(t, err)
				require.NotNil(t, node)
				assert.Equal(t, tc.nodeID, node.ID)
			}
		})
	}
}

func TestGetParameters(t *testing.T) {
	db := setupTestDB(t)
	seedNode(t, db, "service:id:sql:local", map[string]string{
		"sql:base-dn":     "dc=sample,dc=com",
		"sql:salt-length": "64",
	})
	seedNode(t, db, "service:id:sql:bare", nil)

	testCases := []struct {
		name          string
		nodeID        string
		expectedError error
		expected      map[string]string
	}{
		{name: "node not found", nodeID: "service:id:sql:other", expectedError: ErrNodeNotFound},
		{name: "node without parameters", nodeID: "service:id:sql:bare", expected: map[string]string{}},
		{
			name:   "full parameter map",
			nodeID: "service:id:sql:local",
			expected: map[string]string{
				"sql:base-dn":     "dc=sample,dc=com",
				"sql:salt-length": "64",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parameters, err := GetParameters(db, tc.nodeID)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, parameters)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, parameters)
			}
		})
	}
}

func TestSetParameter(t *testing.T) {
	db := setupTestDB(t)
	seedNode(t, db, "service:id:sql:local", map[string]string{"sql:key-length": "256"})

	// Create a new parameter
	require.NoError(t, SetParameter(db, "service:id:sql:local", "sql:key-alg", "PBKDF2WithHmacSHA512"))

	// Update an existing one
	require.NoError(t, SetParameter(db, "service:id:sql:local", "sql:key-length", "512"))

	parameters, err := GetParameters(db, "service:id:sql:local")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sql:key-alg":    "PBKDF2WithHmacSHA512",
		"sql:key-length": "512",
	}, parameters)
}
