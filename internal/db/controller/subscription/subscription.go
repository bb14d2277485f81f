// Package subscription provides read access to subscriptions and their parameters.
package subscription

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

var (
	// ErrSubscriptionNotFound is returned when a subscription is not found.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FindOne retrieves a subscription with its project and node loaded.
func FindOne(db *gorm.DB, id uint) (*models.Subscription, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var sub models.Subscription
	result := db.Preload("Project").Preload("Node").First(&sub, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, result.Error
	}

	return &sub, nil
}

// GetParameters retrieves the full parameter map of a subscription.
func GetParameters(db *gorm.DB, id uint) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := FindOne(db, id); err != nil {
		return nil, err
	}

	var rows []models.SubscriptionParameter
	result := db.Where("subscription_id = ?", id).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	parameters := make(map[string]string, len(rows))
	for _, row := range rows {
		parameters[row.Name] = row.Value
	}

	return parameters, nil
}

// SetParameter creates or updates a single subscription parameter.
func SetParameter(db *gorm.DB, id uint, name, value string) error {
	if db == nil {
		return ErrDBNil
	}

	var row models.SubscriptionParameter
	result := db.Where("subscription_id = ? AND name = ?", id, name).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.SubscriptionParameter{SubscriptionID: id, Name: name, Value: value}
		return db.Create(&row).Error
	}
	if result.Error != nil {
		return result.Error
	}

	row.Value = value
	return db.Save(&row).Error
}
