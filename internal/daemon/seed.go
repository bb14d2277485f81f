package daemon

import (
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed the project scope if no scope exists yet

	var count int64
	db.Model(&models.ContainerScope{}).Count(&count)
	if count == 0 {
		// Default subtree for provisioned project groups
		db.Create(
			&models.ContainerScope{
				Name: models.ScopeProject,
				Type: models.ContainerTypeGroup,
				DN:   "ou=project,dc=sample,dc=com",
			},
		)
	}
}
