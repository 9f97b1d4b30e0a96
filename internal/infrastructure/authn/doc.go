// Package authn implements password hashing and session tokens.
package authn
