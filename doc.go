// Package main provides the entry point for the dirbridge service.
// It runs a Fiber based web server bridging application identities to
// an LDAP shaped directory stored in a SQL database: per node directory
// configuration is cached and invalidated over redis, project groups
// are provisioned inside scoped subtrees, and directory credentials are
// authenticated and mapped to application logins. The application uses
// gorm for data persistence.
package main
