package models

import "time"

// ProjectGroup associates a project with a directory group. The row is
// created exactly once per successful group provisioning workflow and is
// never updated afterwards.
type ProjectGroup struct {
	// ID is the unique identifier for the association.
	ID uint `gorm:"primaryKey"`
	// ProjectID is the associated project.
	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_group"`
	// Project is the associated project (loaded via foreign key).
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	// GroupID is the associated directory group.
	GroupID string `gorm:"size:100;not null;uniqueIndex:idx_project_group"`
	// Group is the associated directory group (loaded via foreign key).
	Group DirectoryGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the association was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ProjectGroup model.
// This overrides GORM's default pluralized table naming.
func (ProjectGroup) TableName() string {
	return "project_groups"
}
