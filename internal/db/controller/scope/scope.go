// Package scope provides read access to container scopes.
package scope

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

var (
	// ErrScopeNotFound is returned when a container scope is not found.
	ErrScopeNotFound = errors.New("container scope not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FindByName retrieves a container scope by its unique name.
func FindByName(db *gorm.DB, name string) (*models.ContainerScope, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var row models.ContainerScope
	result := db.Where("name = ?", name).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrScopeNotFound
		}
		return nil, result.Error
	}

	return &row, nil
}

// FindAllByType retrieves all scopes of a container type.
func FindAllByType(db *gorm.DB, typ models.ContainerType) ([]models.ContainerScope, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.ContainerScope
	result := db.Where("type = ?", typ).Order("name").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}
