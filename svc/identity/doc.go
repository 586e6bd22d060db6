// Package identity wraps the Supabase Auth admin API (github.com/supabase-community/auth-go).
//
// DeleteUser uses the service-role key. SignOutUser needs the project's JWT
// secret as well, because session revocation is only reachable through a
// token belonging to the user being signed out.
package identity
