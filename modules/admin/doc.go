// Package admin mounts the administrative account functions:
//
//	POST /admin-delete-user   {"userId": "<uuid>"}
//	POST /force-logout        signs every user out, reporting per-user results
//
// Neither route authenticates the caller; they are expected to be reachable
// only through the platform's service-role gateway.
package admin
