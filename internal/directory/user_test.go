package directory

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
	err = db.AutoMigrate(
		&models.DirectoryUser{},
		&models.DirectoryUserMail{},
		&models.DirectoryCredential{},
		&models.DirectoryGroup{},
		&models.DirectoryMembership{},
		&models.DirectoryCompany{},
		&models.ProjectGroup{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// setupBundle builds an accessor bundle over a fresh test database.
func setupBundle(t *testing.T) (*Bundle, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)

	bundle, err := New(db, Config{BaseDN: "dc=sample,dc=com"})
	require.NoError(t, err, "failed to build accessor bundle")

	return bundle, db
}

// seedUser inserts a directory user with its mails.
func seedUser(t *testing.T, db *gorm.DB, id, firstName, lastName string, mails ...string) {
	t.Helper()

	user := models.DirectoryUser{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		CompanyID: "ing",
	}
	require.NoError(t, db.Create(&user).Error, "failed to seed directory user")

	for _, mail := range mails {
		row := models.DirectoryUserMail{UserID: id, Mail: mail}
		require.NoError(t, db.Create(&row).Error, "failed to seed mail")
	}
}

func TestUserFindByID(t *testing.T) {
	bundle, db := setupBundle(t)
	seedUser(t, db, "jdoe", "John", "Doe", "john.doe@sample.com")

	account, err := bundle.Users.FindByID("jdoe")
	require.NoError(t, err)
	assert.Equal(t, "jdoe", account.ID)
	assert.Equal(t, "John", account.FirstName)
	assert.Equal(t, "Doe", account.LastName)
	assert.Equal(t, "ing", account.Company)
	assert.Equal(t, []string{"john.doe@sample.com"}, account.Mails)
	assert.Empty(t, account.Groups)
}

func TestUserFindByIDNotFound(t *testing.T) {
	bundle, _ := setupBundle(t)

	account, err := bundle.Users.FindByID("nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, account)
}

func TestUserFindByIDLoadsGroups(t *testing.T) {
	bundle, db := setupBundle(t)
	seedUser(t, db, "jdoe", "John", "Doe", "john.doe@sample.com")

	group, err := bundle.Groups.Create("cn=sea-a,ou=sea,dc=sample,dc=com", "sea-a")
	require.NoError(t, err)
	require.NoError(t, bundle.Groups.AddMember(group, "jdoe"))

	account, err := bundle.Users.FindByID("jdoe")
	require.NoError(t, err)
	assert.Equal(t, []string{"sea-a"}, account.Groups)
}

func TestUserFindByMail(t *testing.T) {
	bundle, db := setupBundle(t)
	seedUser(t, db, "jdoe", "John", "Doe", "john.doe@sample.com")
	seedUser(t, db, "jdoe2", "Johnny", "Doe", "John.Doe@sample.com")
	seedUser(t, db, "other", "Jane", "Roe", "jane.roe@sample.com")

	testCases := []struct {
		name     string
		mail     string
		expected []string
	}{
		{name: "no match", mail: "nobody@sample.com", expected: []string{}},
		{name: "single match", mail: "jane.roe@sample.com", expected: []string{"other"}},
		{name: "case insensitive multi match", mail: "JOHN.DOE@sample.com", expected: []string{"jdoe", "jdoe2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			accounts, err := bundle.Users.FindByMail(tc.mail)
			require.NoError(t, err)

			ids := make([]string, 0, len(accounts))
			for _, account := range accounts {
				ids = append(ids, account.ID)
			}

			assert.ElementsMatch(t, tc.expected, ids)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	bundle, db := setupBundle(t)
	seedUser(t, db, "jdoe", "John", "Doe", "john.doe@sample.com")

	require.NoError(t, bundle.Users.SetCredential("jdoe", "secret"))

	testCases := []struct {
		name     string
		id       string
		secret   string
		expected bool
	}{
		{name: "valid credential", id: "jdoe", secret: "secret", expected: true},
		{name: "wrong secret", id: "jdoe", secret: "wrong", expected: false},
		{name: "unknown user", id: "nobody", secret: "secret", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := bundle.Users.Authenticate(tc.id, tc.secret)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestSetCredentialRotatesSalt(t *testing.T) {
	bundle, db := setupBundle(t)
	seedUser(t, db, "jdoe", "John", "Doe")

	require.NoError(t, bundle.Users.SetCredential("jdoe", "secret"))

	var first models.DirectoryCredential
	require.NoError(t, db.First(&first, "user_id = ?", "jdoe").Error)
	assert.Len(t, first.Salt, DefaultSaltLength)

	require.NoError(t, bundle.Users.SetCredential("jdoe", "secret"))

	var second models.DirectoryCredential
	require.NoError(t, db.First(&second, "user_id = ?", "jdoe").Error)
	assert.NotEqual(t, first.Salt, second.Salt)

	// Only one credential row per user.
	var count int64
	db.Model(&models.DirectoryCredential{}).Where("user_id = ?", "jdoe").Count(&count)
	assert.Equal(t, int64(1), count)

	ok, err := bundle.Users.Authenticate("jdoe", "secret")
	require.NoError(t, err)
	assert.True(t, ok)
}
