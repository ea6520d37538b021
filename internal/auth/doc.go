// Package auth authenticates back-office users against the local users table.
//
// Passwords are stored as Argon2id hashes. Sessions are issued by the web
// layer once LocalProvider.Authenticate succeeds.
package auth
