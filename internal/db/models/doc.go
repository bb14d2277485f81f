// Package models defines the GORM persistence model for dirbridge.
//
// Two families of entities live here:
//
//   - The SQL-backed directory tree: DirectoryUser, DirectoryGroup,
//     DirectoryCompany and DirectoryMembership model an LDAP-like
//     hierarchy where every entry is addressed by a distinguished name.
//     DirectoryCredential stores the salted secret hash used to
//     authenticate directory users.
//
//   - The application side: Node (a configured directory instance),
//     Project, Subscription, ContainerScope, AppUser (the local
//     application identity) and ProjectGroup (the project to group
//     association created by the group provisioning workflow).
//
// All tables are created via AutoMigrate in the daemon package.
package models
