package directory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
)

// Group is a view of a directory group entry together with its member
// users and child groups. The DN is fully determined by the parent's DN
// plus the group's own "cn" segment.
type Group struct {
	// ID is the normalized group name.
	ID string
	// Name is the display name.
	Name string
	// DN is the distinguished name of the entry.
	DN string
	// Scope is the container scope name of the group.
	Scope string
	// Members are the identifiers of the member users.
	Members []string
	// Children are the identifiers of the child groups.
	Children []string
}

// GroupRepository gives access to the group entries of one node's
// directory tree.
type GroupRepository struct {
	db  *gorm.DB
	cfg Config
}

// FindByID retrieves a group with its members and children. Returns
// ErrGroupNotFound when the entry does not exist.
func (r *GroupRepository) FindByID(id string) (*Group, error) {
	var row models.DirectoryGroup

	err := r.db.Where("id = ?", Normalize(id)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query directory group: %w", err)
	}

	return r.toGroup(&row)
}

// FindAllByScope retrieves all groups of a container scope, without
// loading members.
func (r *GroupRepository) FindAllByScope(scope string) ([]*Group, error) {
	var rows []models.DirectoryGroup

	if err := r.db.Where("scope = ?", scope).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query directory groups: %w", err)
	}

	groups := make([]*Group, 0, len(rows))
	for i := range rows {
		groups = append(groups, &Group{
			ID:    rows[i].ID,
			Name:  rows[i].Name,
			DN:    rows[i].DN,
			Scope: rows[i].Scope,
		})
	}

	return groups, nil
}

// Create inserts a new group entry at the given DN. The identifier is
// the normalized name; uniqueness is enforced by the store, so the loser
// of a duplicate-creation race receives ErrGroupExists.
func (r *GroupRepository) Create(dn, name string) (*Group, error) {
	row := models.DirectoryGroup{
		ID:    Normalize(name),
		Name:  name,
		DN:    dn,
		Scope: models.ScopeProject,
	}

	if err := r.db.Create(&row).Error; err != nil {
		var count int64

		r.db.Model(&models.DirectoryGroup{}).
			Where("id = ? OR dn = ?", row.ID, dn).
			Count(&count)

		if count > 0 {
			return nil, ErrGroupExists
		}

		return nil, fmt.Errorf("failed to create directory group: %w", err)
	}

	return &Group{ID: row.ID, Name: row.Name, DN: row.DN, Scope: row.Scope}, nil
}

// AddChild records the child group as a member of the parent. The link
// is bidirectional by construction: the same membership row serves the
// parent's child set and the child's membership.
func (r *GroupRepository) AddChild(parent *Group, childID string) error {
	membership := models.DirectoryMembership{
		GroupID:    parent.ID,
		MemberID:   Normalize(childID),
		MemberType: models.MemberTypeGroup,
	}

	if err := r.db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to link group %q to parent %q: %w", childID, parent.ID, err)
	}

	return nil
}

// Delete removes a group entry together with its membership rows and
// project associations. A group that still has children is rejected
// with ErrGroupHasChildren; deleting a group that does not exist is the
// caller's responsibility to avoid (FindByID first).
func (r *GroupRepository) Delete(group *Group) error {
	var children int64

	err := r.db.Model(&models.DirectoryMembership{}).
		Where("group_id = ? AND member_type = ?", group.ID, models.MemberTypeGroup).
		Count(&children).Error
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}

	if children > 0 {
		return fmt.Errorf("%w: %q", ErrGroupHasChildren, group.ID)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// Drop the group's own membership rows and its link in any parent.
		if err := tx.Where("group_id = ?", group.ID).
			Or("member_id = ? AND member_type = ?", group.ID, models.MemberTypeGroup).
			Delete(&models.DirectoryMembership{}).Error; err != nil {
			return fmt.Errorf("failed to delete memberships: %w", err)
		}

		if err := tx.Where("group_id = ?", group.ID).
			Delete(&models.ProjectGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete project associations: %w", err)
		}

		if err := tx.Where("id = ?", group.ID).
			Delete(&models.DirectoryGroup{}).Error; err != nil {
			return fmt.Errorf("failed to delete directory group: %w", err)
		}

		return nil
	})
}

// AddMember records a user as a member of the group.
func (r *GroupRepository) AddMember(group *Group, userID string) error {
	membership := models.DirectoryMembership{
		GroupID:    group.ID,
		MemberID:   userID,
		MemberType: models.MemberTypeUser,
	}

	if err := r.db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to add member %q to group %q: %w", userID, group.ID, err)
	}

	return nil
}

// CountMembers returns the number of member users of the group.
func (r *GroupRepository) CountMembers(id string) (int64, error) {
	var count int64

	err := r.db.Model(&models.DirectoryMembership{}).
		Where("group_id = ? AND member_type = ?", Normalize(id), models.MemberTypeUser).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

// toGroup loads the membership rows of the entry.
func (r *GroupRepository) toGroup(row *models.DirectoryGroup) (*Group, error) {
	var memberships []models.DirectoryMembership

	if err := r.db.Where("group_id = ?", row.ID).Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}

	group := &Group{
		ID:    row.ID,
		Name:  row.Name,
		DN:    row.DN,
		Scope: row.Scope,
	}

	for _, membership := range memberships {
		switch membership.MemberType {
		case models.MemberTypeGroup:
			group.Children = append(group.Children, membership.MemberID)
		case models.MemberTypeUser:
			group.Members = append(group.Members, membership.MemberID)
		}
	}

	return group, nil
}
