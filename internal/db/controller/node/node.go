// Package node provides read access to nodes and their configuration parameters.
package node

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

var (
	// ErrNodeNotFound is returned when a node is not found.
	ErrNodeNotFound = errors.New("node not found")
	// ErrNodeIDEmpty is returned when the node identifier is empty.
	ErrNodeIDEmpty = errors.New("node identifier cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a node by its identifier.
func Get(db *gorm.DB, id string) (*models.Node, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if id == "" {
		return nil, ErrNodeIDEmpty
	}

	var node models.Node
	result := db.Where("id = ?", id).First(&node)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNodeNotFound
		}
		return nil, result.Error
	}

	return &node, nil
}

// GetParameters retrieves the full parameter map of a node. An unknown
// node yields ErrNodeNotFound rather than an empty map, so a failed
// parameter read is distinguishable from a node without parameters.
func GetParameters(db *gorm.DB, id string) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return nil, err
	}

	var rows []models.NodeParameter
	result := db.Where("node_id = ?", id).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	parameters := make(map[string]string, len(rows))
	for _, row := range rows {
		parameters[row.Name] = row.Value
	}

	return parameters, nil
}

// SetParameter creates or updates a single node parameter.
func SetParameter(db *gorm.DB, id, name, value string) error {
	if db == nil {
		return ErrDBNil
	}
	if id == "" {
		return ErrNodeIDEmpty
	}

	var row models.NodeParameter
	result := db.Where("node_id = ? AND name = ?", id, name).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.NodeParameter{NodeID: id, Name: name, Value: value}
		return db.Create(&row).Error
	}
	if result.Error != nil {
		return result.Error
	}

	row.Value = value
	return db.Save(&row).Error
}
