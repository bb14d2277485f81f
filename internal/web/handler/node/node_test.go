package node

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/db/models"
	"github.com/dirbridge/dirbridge/internal/tenant"
)

const testNode = "service:id:sql:local"

// setupApp builds a fiber app with the node routes over an in-memory
// database.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Node{},
		&models.NodeParameter{},
		&models.DirectoryGroup{},
		&models.DirectoryMembership{},
		&models.DirectoryCompany{},
		&models.DirectoryUser{},
		&models.DirectoryUserMail{},
		&models.DirectoryCredential{},
	)
	require.NoError(t, err, "failed to migrate test database")

	row := models.Node{ID: testNode, Name: testNode}
	require.NoError(t, db.Create(&row).Error)
	parameter := models.NodeParameter{NodeID: testNode, Name: tenant.ParameterBaseDN, Value: "dc=sample,dc=com"}
	require.NoError(t, db.Create(&parameter).Error)

	app := fiber.New()
	cfg := config.Config{}
	require.NoError(t, Handler.Init(app, &cfg, db, tenant.NewCache(db)))

	return app, db
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, target, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, raw
}

func TestStatusRoute(t *testing.T) {
	app, _ := setupApp(t)

	testCases := []struct {
		name       string
		nodeID     string
		expectedUp bool
	}{
		{name: "healthy node", nodeID: testNode, expectedUp: true},
		{name: "unknown node", nodeID: "service:id:sql:absent", expectedUp: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := get(t, app, "/api/node/"+tc.nodeID+"/status")
			assert.Equal(t, fiber.StatusOK, status)

			var payload statusResponse
			require.NoError(t, json.Unmarshal(raw, &payload))
			assert.Equal(t, tc.nodeID, payload.Node)
			assert.Equal(t, tc.expectedUp, payload.Up)
		})
	}
}

func TestFindGroupsRoute(t *testing.T) {
	app, db := setupApp(t)

	seeded := []models.DirectoryGroup{
		{ID: "sea-project", Name: "sea-project", DN: "cn=sea-project,ou=sea,dc=sample,dc=com", Scope: models.ScopeProject},
		{ID: "sea-client", Name: "sea-client", DN: "cn=sea-client,ou=sea,dc=sample,dc=com", Scope: models.ScopeProject},
	}
	for i := range seeded {
		require.NoError(t, db.Create(&seeded[i]).Error)
	}

	status, raw := get(t, app, "/api/group/"+testNode+"/project")
	assert.Equal(t, fiber.StatusOK, status)

	var matches []map[string]string
	require.NoError(t, json.Unmarshal(raw, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "sea-project", matches[0]["id"])
}
