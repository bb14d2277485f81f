// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dirbridge",
	Short: "dirbridge bridges application identities to a SQL backed directory",
	Long: `dirbridge maintains the users, groups and companies of an LDAP shaped
directory inside a SQL database. It provisions groups for subscribed
projects, authenticates directory credentials and derives application
logins from directory accounts.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
