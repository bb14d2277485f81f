package models

import "time"

// Subscription binds a project to a node. The group provisioning
// workflow is always triggered for a subscription, and resolves both the
// project (for its pkey) and the node (for its directory accessors).
type Subscription struct {
	// ID is the unique identifier for the subscription.
	ID uint `gorm:"primaryKey"`
	// ProjectID is the subscribed project.
	ProjectID uint `gorm:"not null"`
	// Project is the associated project (loaded via foreign key).
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	// NodeID is the node this subscription targets.
	NodeID string `gorm:"size:100;not null"`
	// Node is the associated node (loaded via foreign key).
	Node Node `gorm:"foreignKey:NodeID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the subscription was created (managed by GORM).
	CreatedAt time.Time
}

// SubscriptionParameter is a single parameter attached to a subscription,
// such as the requested group name, the OU or the parent group.
type SubscriptionParameter struct {
	// ID is the unique identifier for the parameter row.
	ID uint `gorm:"primaryKey"`
	// SubscriptionID is the owning subscription. One value per name.
	SubscriptionID uint `gorm:"not null;uniqueIndex:idx_subscription_param"`
	// Subscription is the associated subscription (loaded via foreign key).
	Subscription Subscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE"`
	// Name is the parameter name, such as "sql:group".
	Name string `gorm:"size:100;not null;uniqueIndex:idx_subscription_param"`
	// Value is the raw parameter value.
	Value string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for the SubscriptionParameter model.
// This overrides GORM's default pluralized table naming.
func (SubscriptionParameter) TableName() string {
	return "subscription_parameters"
}
