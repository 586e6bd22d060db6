// Package account implements the administrative account operations: deleting
// a user and forcing every user to sign in again.
package account
