// Package directory implements the accessor bundle for one SQL-backed
// directory instance.
//
// A Bundle groups the three repositories (users, groups, companies)
// built from the parameters of a single node: hash algorithm, iteration
// count, key length, salt length and the base DN the tree lives under.
// A Bundle is immutable once built; the tenant cache replaces it
// wholesale on invalidation.
//
// The directory is relational, not a real LDAP server, but every entry
// still carries a distinguished name and the DN helpers in this package
// keep paths consistent: an entry's DN is always its own RDN prepended
// to its parent's DN.
//
// # Credential verification
//
// UserRepository.Authenticate recomputes the salted hash of the
// presented secret with the node's configured algorithm and compares it
// against the stored hash in constant time. Supported algorithms are
// PBKDF2WithHmacSHA512 (default), PBKDF2WithHmacSHA256 and Argon2id.
// Plaintext secrets are never stored or logged.
package directory
