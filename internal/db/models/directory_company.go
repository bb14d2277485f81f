package models

import "time"

// DirectoryCompany is a company entry of the directory tree. Users
// reference their company by ID.
type DirectoryCompany struct {
	// ID is the normalized, unique company name.
	ID string `gorm:"primaryKey;size:100"`
	// Name is the display name of the company.
	Name string `gorm:"size:100;not null"`
	// DN is the distinguished name of the entry, unique in the tree.
	DN string `gorm:"column:dn;size:255;not null;uniqueIndex"`
	// CreatedAt is the timestamp when the company was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the DirectoryCompany model.
// This overrides GORM's default pluralized table naming.
func (DirectoryCompany) TableName() string {
	return "directory_companies"
}
