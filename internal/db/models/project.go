package models

import "time"

// Project represents a project that can be bound to directory groups
// through subscriptions. The Pkey is the naming root every group created
// for this project must respect.
type Project struct {
	// ID is the unique identifier for the project.
	ID uint `gorm:"primaryKey"`
	// Pkey is the unique project key used to validate group names.
	Pkey string `gorm:"size:100;not null;uniqueIndex"`
	// Name is the display name of the project.
	Name string `gorm:"size:200;not null"`
	// TeamLeader is the login of the project team leader.
	TeamLeader string `gorm:"size:100"`
	// CreatedAt is the timestamp when the project was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the project was last updated (managed by GORM).
	UpdatedAt time.Time
}
