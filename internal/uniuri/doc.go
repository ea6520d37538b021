// Package uniuri generates random strings from a fixed alphabet without modulo bias.
// It backs session ids and the generated initial admin password.
package uniuri
