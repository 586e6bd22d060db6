// Package async provides generic futures and a bounded fan-out helper.
//
// Settle is what force logout uses to sign out every user with a fixed number
// of identity-provider calls in flight while still reporting a per-user outcome.
package async
