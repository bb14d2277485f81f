package models

import "time"

// Node represents one configured external directory instance (a tenant).
// Every subscription points to a node, and the per-node parameters drive
// how the directory accessors for that node are built.
type Node struct {
	// ID is the unique node identifier, such as "service:id:sql:main".
	ID string `gorm:"primaryKey;size:100"`
	// Name is the human readable node label.
	Name string `gorm:"size:100;not null"`
	// CreatedAt is the timestamp when the node was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the node was last updated (managed by GORM).
	UpdatedAt time.Time
}

// NodeParameter is a single configuration parameter attached to a node.
// The parameter set of a node is read as a whole when the directory
// accessor bundle for that node is built.
type NodeParameter struct {
	// ID is the unique identifier for the parameter row.
	ID uint `gorm:"primaryKey"`
	// NodeID is the owning node. A node has at most one value per name.
	NodeID string `gorm:"size:100;not null;uniqueIndex:idx_node_param"`
	// Node is the associated node (loaded via foreign key).
	Node Node `gorm:"foreignKey:NodeID;constraint:OnDelete:CASCADE"`
	// Name is the parameter name, such as "sql:base-dn".
	Name string `gorm:"size:100;not null;uniqueIndex:idx_node_param"`
	// Value is the raw parameter value.
	Value string `gorm:"size:255;not null"`
}

// TableName specifies the database table name for the NodeParameter model.
// This overrides GORM's default pluralized table naming.
func (NodeParameter) TableName() string {
	return "node_parameters"
}
