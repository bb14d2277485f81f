package models

// ContainerType discriminates the two kinds of directory containers a
// scope can apply to.
type ContainerType string

const (
	// ContainerTypeGroup marks a scope applying to directory groups.
	ContainerTypeGroup ContainerType = "group"
	// ContainerTypeCompany marks a scope applying to directory companies.
	ContainerTypeCompany ContainerType = "company"
)

// ScopeProject is the scope name of project bound groups. Groups created
// by the provisioning workflow always live under this scope's DN.
const ScopeProject = "Project"

// ContainerScope names a subtree of the directory and the category of
// the containers stored inside it. The DN is the root under which the
// matching containers are created.
type ContainerScope struct {
	// ID is the unique identifier for the scope.
	ID uint `gorm:"primaryKey"`
	// Name is the unique scope name, such as "Project".
	Name string `gorm:"size:100;not null;uniqueIndex"`
	// Type is the container category this scope applies to.
	Type ContainerType `gorm:"type:varchar(20);not null"`
	// DN is the distinguished name of the scope root.
	DN string `gorm:"column:dn;size:255;not null"`
}

// TableName specifies the database table name for the ContainerScope model.
// This overrides GORM's default pluralized table naming.
func (ContainerScope) TableName() string {
	return "container_scopes"
}
