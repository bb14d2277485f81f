package models

import "time"

// MemberType discriminates the two kinds of members a directory group
// can hold.
type MemberType string

const (
	// MemberTypeUser marks a membership row pointing at a directory user.
	MemberTypeUser MemberType = "user"
	// MemberTypeGroup marks a membership row pointing at a child group.
	MemberTypeGroup MemberType = "group"
)

// DirectoryGroup is a group entry of the directory tree. The ID is the
// normalized group name and the DN locates the entry below its parent:
// the DN is always "cn=<id>,<parent DN>".
type DirectoryGroup struct {
	// ID is the normalized, unique group name.
	ID string `gorm:"primaryKey;size:100"`
	// Name is the display name of the group.
	Name string `gorm:"size:100;not null"`
	// DN is the distinguished name of the entry, unique in the tree.
	DN string `gorm:"column:dn;size:255;not null;uniqueIndex"`
	// Scope is the name of the ContainerScope the group belongs to.
	Scope string `gorm:"size:100"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the DirectoryGroup model.
// This overrides GORM's default pluralized table naming.
func (DirectoryGroup) TableName() string {
	return "directory_groups"
}

// DirectoryMembership links a group to one of its members, either a user
// or a child group. Creating or deleting a group updates exactly one
// parent's membership rows.
type DirectoryMembership struct {
	// ID is the unique identifier for the membership row.
	ID uint `gorm:"primaryKey"`
	// GroupID is the containing group.
	GroupID string `gorm:"size:100;not null;uniqueIndex:idx_group_member"`
	// Group is the containing group (loaded via foreign key).
	Group DirectoryGroup `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	// MemberID is the identifier of the member entry.
	MemberID string `gorm:"size:100;not null;uniqueIndex:idx_group_member"`
	// MemberType tells whether MemberID is a user or a child group.
	MemberType MemberType `gorm:"type:varchar(10);not null;uniqueIndex:idx_group_member"`
}

// TableName specifies the database table name for the DirectoryMembership model.
// This overrides GORM's default pluralized table naming.
func (DirectoryMembership) TableName() string {
	return "directory_memberships"
}
