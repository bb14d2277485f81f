package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

func TestGroupCreateAndFind(t *testing.T) {
	bundle, _ := setupBundle(t)

	created, err := bundle.Groups.Create("cn=Sea-Project,ou=sea,dc=sample,dc=com", "Sea-Project")
	require.NoError(t, err)
	assert.Equal(t, "sea-project", created.ID)
	assert.Equal(t, "Sea-Project", created.Name)
	assert.Equal(t, models.ScopeProject, created.Scope)

	// Lookup normalizes the identifier.
	found, err := bundle.Groups.FindByID("SEA-Project")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "cn=Sea-Project,ou=sea,dc=sample,dc=com", found.DN)
}

func TestGroupFindByIDNotFound(t *testing.T) {
	bundle, _ := setupBundle(t)

	group, err := bundle.Groups.FindByID("nope")
	require.ErrorIs(t, err, ErrGroupNotFound)
	assert.Nil(t, group)
}

func TestGroupCreateDuplicate(t *testing.T) {
	bundle, _ := setupBundle(t)

	_, err := bundle.Groups.Create("cn=sea-a,ou=sea,dc=sample,dc=com", "sea-a")
	require.NoError(t, err)

	// Same normalized identifier, different display case.
	_, err = bundle.Groups.Create("cn=Sea-A,ou=sea,dc=sample,dc=com", "Sea-A")
	require.ErrorIs(t, err, ErrGroupExists)
}

func TestGroupAddChild(t *testing.T) {
	bundle, _ := setupBundle(t)

	parent, err := bundle.Groups.Create("cn=sea-par,ou=sea,dc=sample,dc=com", "sea-par")
	require.NoError(t, err)

	child, err := bundle.Groups.Create("cn=sea-par-child,cn=sea-par,ou=sea,dc=sample,dc=com", "sea-par-child")
	require.NoError(t, err)

	require.NoError(t, bundle.Groups.AddChild(parent, child.ID))

	// The link is visible from the parent side.
	reloaded, err := bundle.Groups.FindByID(parent.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sea-par-child"}, reloaded.Children)
	assert.Empty(t, reloaded.Members)
}

func TestGroupMembers(t *testing.T) {
	bundle, _ := setupBundle(t)

	group, err := bundle.Groups.Create("cn=sea-a,ou=sea,dc=sample,dc=com", "sea-a")
	require.NoError(t, err)

	require.NoError(t, bundle.Groups.AddMember(group, "jdoe"))
	require.NoError(t, bundle.Groups.AddMember(group, "jroe"))

	count, err := bundle.Groups.CountMembers("Sea-A")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	reloaded, err := bundle.Groups.FindByID("sea-a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"jdoe", "jroe"}, reloaded.Members)
}

func TestGroupDelete(t *testing.T) {
	bundle, db := setupBundle(t)

	group, err := bundle.Groups.Create("cn=sea-a,ou=sea,dc=sample,dc=com", "sea-a")
	require.NoError(t, err)
	require.NoError(t, bundle.Groups.AddMember(group, "jdoe"))

	association := models.ProjectGroup{ProjectID: 1, GroupID: group.ID}
	require.NoError(t, db.Create(&association).Error)

	require.NoError(t, bundle.Groups.Delete(group))

	_, err = bundle.Groups.FindByID("sea-a")
	require.ErrorIs(t, err, ErrGroupNotFound)

	// Membership rows and project associations are gone too.
	var memberships int64
	db.Model(&models.DirectoryMembership{}).Where("group_id = ?", group.ID).Count(&memberships)
	assert.Zero(t, memberships)

	var associations int64
	db.Model(&models.ProjectGroup{}).Where("group_id = ?", group.ID).Count(&associations)
	assert.Zero(t, associations)
}

func TestGroupDeleteWithChildren(t *testing.T) {
	bundle, _ := setupBundle(t)

	parent, err := bundle.Groups.Create("cn=sea-par,ou=sea,dc=sample,dc=com", "sea-par")
	require.NoError(t, err)

	child, err := bundle.Groups.Create("cn=sea-par-child,cn=sea-par,ou=sea,dc=sample,dc=com", "sea-par-child")
	require.NoError(t, err)
	require.NoError(t, bundle.Groups.AddChild(parent, child.ID))

	parent, err = bundle.Groups.FindByID(parent.ID)
	require.NoError(t, err)
	require.ErrorIs(t, bundle.Groups.Delete(parent), ErrGroupHasChildren)

	// Deleting the child first unlinks it from the parent.
	require.NoError(t, bundle.Groups.Delete(child))

	parent, err = bundle.Groups.FindByID(parent.ID)
	require.NoError(t, err)
	assert.Empty(t, parent.Children)
	require.NoError(t, bundle.Groups.Delete(parent))
}

func TestGroupFindAllByScope(t *testing.T) {
	bundle, db := setupBundle(t)

	_, err := bundle.Groups.Create("cn=sea-a,ou=sea,dc=sample,dc=com", "sea-a")
	require.NoError(t, err)

	other := models.DirectoryGroup{ID: "other", Name: "other", DN: "cn=other,dc=sample,dc=com", Scope: "Fonction"}
	require.NoError(t, db.Create(&other).Error)

	visible, err := bundle.Groups.FindAllByScope(models.ScopeProject)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "sea-a", visible[0].ID)
}
