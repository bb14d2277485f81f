// Package groups implements the hierarchical group provisioning
// workflows: creating a project group under its organizational unit or
// parent group, linking a subscription to an existing group, deleting a
// group and reporting subscription status.
package groups

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/controller/scope"
	"github.com/dirbridge/dirbridge/internal/db/controller/subscription"
	"github.com/dirbridge/dirbridge/internal/db/models"
	"github.com/dirbridge/dirbridge/internal/directory"
	"github.com/dirbridge/dirbridge/internal/tenant"
)

// NamedEntity is the identifier and display name pair returned by the
// link workflow.
type NamedEntity struct {
	// ID is the normalized group identifier.
	ID string `json:"id"`
	// Name is the canonical display name.
	Name string `json:"name"`
}

// SubscriptionStatus reports whether the subscribed group exists and,
// when it does, how many member users it holds.
type SubscriptionStatus struct {
	// Active is true when the group exists in the directory.
	Active bool `json:"active"`
	// Members is the member count, only meaningful when Active.
	Members int64 `json:"members,omitempty"`
}

// Engine runs the group provisioning workflows for subscriptions.
type Engine struct {
	db      *gorm.DB
	tenants *tenant.Cache
}

// NewEngine creates a group engine reading application data from db and
// directory accessors from the tenant cache.
func NewEngine(db *gorm.DB, tenants *tenant.Cache) *Engine {
	return &Engine{db: db, tenants: tenants}
}

// Create validates the requested group name against the subscription's
// OU, project key and optional parent group, creates the entry below
// the resolved parent path and records the project association.
//
// Entry creation and association are atomic from the caller's view: if
// the association cannot be persisted, the created group is deleted
// again and the workflow reports failure.
func (e *Engine) Create(subscriptionID uint) error {
	sub, err := subscription.FindOne(e.db, subscriptionID)
	if err != nil {
		return err
	}

	parameters, err := subscription.GetParameters(e.db, subscriptionID)
	if err != nil {
		return err
	}

	group := parameters[ParameterGroup]
	parentGroup := parameters[ParameterParentGroup]
	ou := parameters[ParameterOU]
	pkey := sub.Project.Pkey

	bundle, err := e.tenants.Get(sub.NodeID)
	if err != nil {
		return err
	}

	repository := bundle.Groups

	if err := e.validateName(repository, group, ou, pkey); err != nil {
		return err
	}

	parent, parentDN, err := e.resolveParent(repository, group, parentGroup, ou)
	if err != nil {
		return err
	}

	// Create the group inside the parent (OU or parent CN).
	groupDN := directory.ChildDN("cn", group, parentDN)
	log.Info().Str("group", group).Str("project", pkey).Uint("subscription", subscriptionID).
		Msg("creating directory group")

	created, err := repository.Create(groupDN, group)
	if errors.Is(err, directory.ErrGroupExists) {
		// Loser of a duplicate-creation race.
		return newValidationError(ParameterGroup, RuleAlreadyExists, group)
	}

	if err != nil {
		return err
	}

	if parent != nil {
		if errLink := repository.AddChild(parent, created.ID); errLink != nil {
			return e.compensate(repository, created, errLink)
		}
	}

	association := models.ProjectGroup{
		ProjectID: sub.ProjectID,
		GroupID:   created.ID,
	}

	if errAssoc := e.db.Create(&association).Error; errAssoc != nil {
		return e.compensate(repository, created,
			fmt.Errorf("failed to associate project %q with group %q: %w", pkey, created.ID, errAssoc))
	}

	return nil
}

// compensate rolls the created entry back so a partially applied
// workflow never leaves a group without its association.
func (e *Engine) compensate(repository *directory.GroupRepository, created *directory.Group, cause error) error {
	if errDelete := repository.Delete(created); errDelete != nil {
		log.Error().Err(errDelete).Str("group", created.ID).
			Msg("failed to roll back group creation")
	}

	return cause
}

// Link validates that the subscribed group exists and carries the
// project scope, and returns its canonical identity.
func (e *Engine) Link(subscriptionID uint) (*NamedEntity, error) {
	sub, err := subscription.FindOne(e.db, subscriptionID)
	if err != nil {
		return nil, err
	}

	parameters, err := subscription.GetParameters(e.db, subscriptionID)
	if err != nil {
		return nil, err
	}

	bundle, err := e.tenants.Get(sub.NodeID)
	if err != nil {
		return nil, err
	}

	return e.validateLinkedGroup(bundle.Groups, parameters[ParameterGroup])
}

// validateLinkedGroup checks existence and scope of the named group.
func (e *Engine) validateLinkedGroup(repository *directory.GroupRepository, name string) (*NamedEntity, error) {
	group, err := repository.FindByID(name)
	if errors.Is(err, directory.ErrGroupNotFound) {
		return nil, newValidationError(ParameterGroup, RuleUnknownID, name)
	}

	if err != nil {
		return nil, err
	}

	if group.Scope != models.ScopeProject {
		return nil, newValidationError(ParameterGroup, RuleGroupType, name)
	}

	return &NamedEntity{ID: group.ID, Name: group.Name}, nil
}

// Delete removes the subscribed group from the directory when remote
// data deletion is requested. A group that no longer exists is a no-op;
// a group that still has children is rejected.
func (e *Engine) Delete(subscriptionID uint, deleteRemoteData bool) error {
	if !deleteRemoteData {
		return nil
	}

	sub, err := subscription.FindOne(e.db, subscriptionID)
	if err != nil {
		return err
	}

	parameters, err := subscription.GetParameters(e.db, subscriptionID)
	if err != nil {
		return err
	}

	bundle, err := e.tenants.Get(sub.NodeID)
	if err != nil {
		return err
	}

	group, err := bundle.Groups.FindByID(parameters[ParameterGroup])
	if errors.Is(err, directory.ErrGroupNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	return bundle.Groups.Delete(group)
}

// Status reports whether the subscribed group exists and its member
// count. An absent group is an inactive subscription, not an error.
func (e *Engine) Status(nodeID string, parameters map[string]string) (*SubscriptionStatus, error) {
	bundle, err := e.tenants.Get(nodeID)
	if err != nil {
		return nil, err
	}

	name := parameters[ParameterGroup]

	group, err := bundle.Groups.FindByID(name)
	if errors.Is(err, directory.ErrGroupNotFound) {
		return &SubscriptionStatus{Active: false}, nil
	}

	if err != nil {
		return nil, err
	}

	members, err := bundle.Groups.CountMembers(group.ID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionStatus{Active: true, Members: members}, nil
}

// CheckStatus probes the node's directory with a throwaway lookup. The
// user is not expected to exist; only store errors matter.
func (e *Engine) CheckStatus(nodeID string) error {
	bundle, err := e.tenants.Get(nodeID)
	if err != nil {
		return err
	}

	if _, err := bundle.Users.FindByID("-any-"); err != nil && !errors.Is(err, directory.ErrUserNotFound) {
		return err
	}

	return nil
}

// FindGroupsByName returns the project-scope groups whose identifier
// contains the normalized criteria.
func (e *Engine) FindGroupsByName(nodeID, criteria string) ([]NamedEntity, error) {
	bundle, err := e.tenants.Get(nodeID)
	if err != nil {
		return nil, err
	}

	visible, err := bundle.Groups.FindAllByScope(models.ScopeProject)
	if err != nil {
		return nil, err
	}

	clean := directory.Normalize(criteria)
	result := make([]NamedEntity, 0, len(visible))

	for _, group := range visible {
		if strings.Contains(group.ID, clean) {
			result = append(result, NamedEntity{ID: group.ID, Name: group.Name})
		}
	}

	return result, nil
}

// validateName checks the group name against its OU and project key.
func (e *Engine) validateName(repository *directory.GroupRepository, group, ou, pkey string) error {
	_, err := repository.FindByID(group)
	if err == nil {
		return newValidationError(ParameterGroup, RuleAlreadyExists, group)
	}

	if !errors.Is(err, directory.ErrGroupNotFound) {
		return err
	}

	// The group must start with the target OU and be strictly longer.
	if !startsWithAndDifferent(group, ou+"-") {
		return newValidationError(ParameterGroup, RulePattern, ou+"-.+")
	}

	// The group must equal the project key, or extend it.
	if group != pkey && !startsWithAndDifferent(group, pkey+"-") {
		return newValidationError(ParameterGroup, RulePattern, pkey+"(-.+)?")
	}

	return nil
}

// resolveParent returns the parent the new group is created under: a
// nil group with the normalized OU path when no parent group is given,
// or the parent group itself with its own DN. The OU segment is never
// checked for prior existence.
func (e *Engine) resolveParent(repository *directory.GroupRepository, group, parentGroup, ou string) (*directory.Group, string, error) {
	if parentGroup == "" {
		projectScope, err := scope.FindByName(e.db, models.ScopeProject)
		if err != nil {
			return nil, "", err
		}

		return nil, directory.ChildDN("ou", directory.Normalize(ou), projectScope.DN), nil
	}

	parent, err := repository.FindByID(parentGroup)
	if errors.Is(err, directory.ErrGroupNotFound) {
		return nil, "", newValidationError(ParameterParentGroup, RuleUnknownID, parentGroup)
	}

	if err != nil {
		return nil, "", err
	}

	if !strings.HasPrefix(group, parentGroup+"-") {
		return nil, "", newValidationError(ParameterGroup, RulePattern, parentGroup+"-.*")
	}

	return parent, parent.DN, nil
}

func startsWithAndDifferent(provided, expected string) bool {
	return strings.HasPrefix(provided, expected) && provided != expected
}
