package directory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dirbridge/dirbridge/internal/db/models"
	"github.com/dirbridge/dirbridge/internal/uniuri"
)

// Account is a read-only view of a directory user entry, including its
// mails and the identifiers of the groups it belongs to.
type Account struct {
	// ID is the directory login.
	ID string
	// FirstName is the first or given name.
	FirstName string
	// LastName is the last or family name.
	LastName string
	// Company is the identifier of the user's company entry.
	Company string
	// Mails are the mail addresses of the entry, zero or more.
	Mails []string
	// Groups are the identifiers of the groups the user is a member of.
	Groups []string
}

// UserRepository gives access to the user entries of one node's
// directory and verifies credentials with the node's hash parameters.
type UserRepository struct {
	db     *gorm.DB
	cfg    Config
	hasher hasher
}

// FindByID retrieves a directory user with its mails and group
// memberships. Returns ErrUserNotFound when the entry does not exist.
func (r *UserRepository) FindByID(id string) (*Account, error) {
	var user models.DirectoryUser

	err := r.db.Preload("Mails").Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query directory user: %w", err)
	}

	return r.toAccount(&user)
}

// FindByMail retrieves all directory users holding the given mail
// address. The comparison is case-insensitive. Zero, one or many
// accounts can match; callers must handle all three.
func (r *UserRepository) FindByMail(mail string) ([]*Account, error) {
	var rows []models.DirectoryUserMail

	err := r.db.Where("LOWER(mail) = LOWER(?)", mail).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query directory mails: %w", err)
	}

	accounts := make([]*Account, 0, len(rows))

	for _, row := range rows {
		account, errFind := r.FindByID(row.UserID)
		if errFind != nil {
			return nil, errFind
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

// Authenticate verifies the presented secret against the stored salted
// hash. An unknown user or a missing credential row verifies as false,
// never as an error, so callers cannot tell the two apart.
func (r *UserRepository) Authenticate(id, secret string) (bool, error) {
	var credential models.DirectoryCredential

	err := r.db.Where("user_id = ?", id).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to query credential: %w", err)
	}

	return r.hasher.Verify(credential.Salt, credential.Hash, secret)
}

// SetCredential stores the salted hash of a new secret for the user.
// A fresh random salt of the configured length is generated each time.
func (r *UserRepository) SetCredential(id, secret string) error {
	salt := uniuri.NewLen(r.cfg.SaltLength)

	hashed, err := r.hasher.Hash(salt, secret)
	if err != nil {
		return err
	}

	credential := models.DirectoryCredential{
		UserID: id,
		Salt:   salt,
		Hash:   hashed,
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&credential).Error
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	return nil
}

// toAccount loads the membership rows and maps the entry to its
// read-only view.
func (r *UserRepository) toAccount(user *models.DirectoryUser) (*Account, error) {
	var memberships []models.DirectoryMembership

	err := r.db.Where("member_id = ? AND member_type = ?", user.ID, models.MemberTypeUser).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}

	account := &Account{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.CompanyID,
		Mails:     make([]string, 0, len(user.Mails)),
		Groups:    make([]string, 0, len(memberships)),
	}

	for _, mail := range user.Mails {
		account.Mails = append(account.Mails, mail.Mail)
	}

	for _, membership := range memberships {
		account.Groups = append(account.Groups, membership.GroupID)
	}

	return account, nil
}
