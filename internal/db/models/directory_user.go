package models

import "time"

// DirectoryUser is a person entry of the directory tree. The ID is the
// directory login the user authenticates with.
type DirectoryUser struct {
	// ID is the unique directory login.
	ID string `gorm:"primaryKey;size:100"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// CompanyID is the company entry the user belongs to.
	CompanyID string `gorm:"size:100"`
	// Mails are the mail addresses attached to the entry, zero or more.
	Mails []DirectoryUserMail `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the DirectoryUser model.
// This overrides GORM's default pluralized table naming.
func (DirectoryUser) TableName() string {
	return "directory_users"
}

// DirectoryUserMail is one mail address of a directory user. Mails are
// kept in their own table so lookup by mail stays a plain indexed query.
type DirectoryUserMail struct {
	// ID is the unique identifier for the mail row.
	ID uint `gorm:"primaryKey"`
	// UserID is the owning directory user.
	UserID string `gorm:"size:100;not null;index"`
	// Mail is the address. Collation of the column decides case
	// sensitivity; lookups normalize to lower case before comparing.
	Mail string `gorm:"size:255;not null;index"`
}

// TableName specifies the database table name for the DirectoryUserMail model.
// This overrides GORM's default pluralized table naming.
func (DirectoryUserMail) TableName() string {
	return "directory_user_mails"
}

// DirectoryCredential holds the salted secret hash of a directory user.
// The plaintext secret is never stored; authentication recomputes the
// hash from the presented secret and the stored salt.
type DirectoryCredential struct {
	// UserID is the directory user this credential belongs to.
	UserID string `gorm:"primaryKey;size:100"`
	// User is the associated directory user (loaded via foreign key).
	User DirectoryUser `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Salt is the random salt used to derive the hash, hex encoded.
	Salt string `gorm:"size:255;not null"`
	// Hash is the derived key, hex encoded, or an encoded Argon2id hash
	// when the node is configured for that algorithm.
	Hash string `gorm:"size:512;not null"`
	// UpdatedAt is the timestamp when the credential was last rotated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the DirectoryCredential model.
// This overrides GORM's default pluralized table naming.
func (DirectoryCredential) TableName() string {
	return "directory_credentials"
}
