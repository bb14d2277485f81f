package identity

import "errors"

var (
	// ErrBadCredentials is returned when the directory rejects the
	// credential pair. Callers never learn whether the identifier or the
	// secret was wrong.
	ErrBadCredentials = errors.New("bad credentials")

	// ErrNoMail is returned when the authenticated account carries no mail
	// address, which is required to resolve an application identity.
	ErrNoMail = errors.New("account has no mail")

	// ErrAmbiguousAccount is returned when more than one application
	// identity holds the account's mail address. This is a pre-existing
	// data integrity problem; the pipeline never picks one arbitrarily.
	ErrAmbiguousAccount = errors.New("ambiguous account")

	// ErrCannotBuildLogin is returned when no login candidate can be
	// derived from the account's name attributes.
	ErrCannotBuildLogin = errors.New("cannot build application login")
)
