// Package identity implements the authentication and provisioning
// pipeline bridging directory accounts to application identities.
//
// Authentication verifies a credential pair against the node's
// directory, then resolves the authenticated account to a local
// application identity: merged into an existing identity holding the
// same mail address, or created with a collision-free login derived
// from the account's name. Identity creation is serialized process-wide
// because the free-login probe is not atomic against the store.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/db/models"
	"github.com/dirbridge/dirbridge/internal/directory"
	"github.com/dirbridge/dirbridge/internal/tenant"
)

// creationMu serializes application identity creation. Without it, two
// concurrent free-login probes could both observe the same free suffix
// before either commits. Creation is rare relative to authentication,
// so a single critical section is an acceptable tradeoff.
var creationMu sync.Mutex //nolint:gochecknoglobals

// Credential is a presented identifier and secret pair. It is only
// forwarded to the directory for verification, never persisted.
type Credential struct {
	// Name is the directory login.
	Name string `json:"name" validate:"required"`
	// Secret is the plaintext secret. Never logged.
	Secret string `json:"secret" validate:"required"`
}

// Resolved is the outcome of a successful authentication.
type Resolved struct {
	// Login is the application login the session should run as. For
	// primary nodes this is the directory login itself.
	Login string `json:"login"`
	// Primary reports whether the directory identity was authoritative.
	Primary bool `json:"primary"`
}

// Pipeline authenticates credentials and provisions application
// identities.
type Pipeline struct {
	db      *gorm.DB
	tenants *tenant.Cache
}

// NewPipeline creates a pipeline storing application identities in db
// and resolving directory accessors through the tenant cache.
func NewPipeline(db *gorm.DB, tenants *tenant.Cache) *Pipeline {
	return &Pipeline{db: db, tenants: tenants}
}

// Accept reports whether the node accepts the login at all, according
// to its uid-pattern parameter. A node without parameters accepts
// nothing; a node without a pattern accepts everything.
func (p *Pipeline) Accept(name, nodeID string) bool {
	parameters, err := p.tenants.Parameters(nodeID)
	if err != nil || len(parameters) == 0 {
		return false
	}

	pattern := parameters[tenant.ParameterUIDPattern]
	if pattern == "" {
		pattern = ".*"
	}

	matched, err := regexp.MatchString("^(?:"+pattern+")$", name)
	if err != nil {
		log.Warn().Err(err).Str("node", nodeID).Msg("invalid uid-pattern parameter")
		return false
	}

	return matched
}

// Authenticate verifies the credential against the node's directory and
// resolves the application identity. When primary is true the directory
// identity is authoritative and returned unchanged.
//
// Failures are distinguished internally (see the package error values)
// but should be surfaced to external callers as one opaque category.
func (p *Pipeline) Authenticate(credential Credential, nodeID string, primary bool) (*Resolved, error) {
	bundle, err := p.tenants.Get(nodeID)
	if err != nil {
		return nil, err
	}

	authenticated, err := bundle.Users.Authenticate(credential.Name, credential.Secret)
	if err != nil {
		return nil, err
	}

	if !authenticated {
		return nil, ErrBadCredentials
	}

	if primary {
		return &Resolved{Login: credential.Name, Primary: true}, nil
	}

	login, err := p.toApplicationUser(bundle.Users, credential.Name)
	if err != nil {
		return nil, err
	}

	return &Resolved{Login: login}, nil
}

// toApplicationUser fetches the directory account and resolves the
// matching application identity.
func (p *Pipeline) toApplicationUser(users *directory.UserRepository, name string) (string, error) {
	account, err := users.FindByID(name)
	if err != nil {
		return "", err
	}

	if len(account.Mails) == 0 {
		log.Info().Str("account", account.ID).Str("first", account.FirstName).
			Str("last", account.LastName).Msg("account has no mail")

		return "", ErrNoMail
	}

	return p.resolveByMail(account)
}

// resolveByMail resolves the application identity holding the account's
// first mail address: created when absent, merged when unique, rejected
// when ambiguous.
func (p *Pipeline) resolveByMail(account *directory.Account) (string, error) {
	mail := account.Mails[0]

	var matches []models.AppUser

	err := p.db.Where("LOWER(mail) = LOWER(?)", mail).Find(&matches).Error
	if err != nil {
		return "", fmt.Errorf("failed to query application identities: %w", err)
	}

	switch len(matches) {
	case 0:
		return p.newApplicationUser(account)
	case 1:
		return matches[0].Login, p.mergeUser(&matches[0], account)
	default:
		log.Info().Str("account", account.ID).Str("first", account.FirstName).
			Str("last", account.LastName).Int("matches", len(matches)).
			Msg("account mail matches several application identities")

		return "", ErrAmbiguousAccount
	}
}

// mergeUser copies the account attributes onto the existing identity.
// The login never changes during a merge.
func (p *Pipeline) mergeUser(user *models.AppUser, account *directory.Account) error {
	user.FirstName = account.FirstName
	user.LastName = account.LastName
	user.Mail = account.Mails[0]

	if err := p.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to merge application identity: %w", err)
	}

	return nil
}

// newApplicationUser creates the application identity with a free login
// derived from the account name. The whole section is serialized so two
// concurrent creations can never allocate the same login.
func (p *Pipeline) newApplicationUser(account *directory.Account) (string, error) {
	creationMu.Lock()
	defer creationMu.Unlock()

	base, err := toLogin(account)
	if err != nil {
		return "", err
	}

	login, err := p.nextFreeLogin(base)
	if err != nil {
		return "", err
	}

	user := models.AppUser{
		Login:     login,
		Mail:      account.Mails[0],
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return "", fmt.Errorf("failed to create application identity: %w", err)
	}

	log.Info().Str("login", login).Str("account", account.ID).Msg("created application identity")

	return login, nil
}

// nextFreeLogin probes login, login1, login2, ... until an unused one
// is found. The probe is strictly sequential and deterministic for a
// given base and store state.
func (p *Pipeline) nextFreeLogin(base string) (string, error) {
	for suffix := 0; ; suffix++ {
		candidate := base
		if suffix > 0 {
			candidate += strconv.Itoa(suffix)
		}

		var user models.AppUser

		err := p.db.Where("login = ?", candidate).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", fmt.Errorf("failed to probe login %q: %w", candidate, err)
		}
	}
}

// toLogin derives the login candidate from the account: the first
// character of the normalized first name concatenated with the
// normalized last name.
func toLogin(account *directory.Account) (string, error) {
	firstName := normalizeName(account.FirstName)
	lastName := normalizeName(account.LastName)

	if firstName == "" || lastName == "" {
		return "", ErrCannotBuildLogin
	}

	return firstName[:1] + lastName, nil
}
