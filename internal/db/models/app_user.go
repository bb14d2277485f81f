package models

import "time"

// AppUser is the local application identity the host system
// authenticates sessions against. It is distinct from the directory
// user: the provisioning pipeline creates or merges an AppUser from the
// authenticated directory account.
type AppUser struct {
	// Login is the unique application login.
	Login string `gorm:"primaryKey;size:100"`
	// Mail is the mail address the identity was resolved with.
	Mail string `gorm:"size:255;index"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// CreatedAt is the timestamp when the identity was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the identity was last merged (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the AppUser model.
// This overrides GORM's default pluralized table naming.
func (AppUser) TableName() string {
	return "app_users"
}
