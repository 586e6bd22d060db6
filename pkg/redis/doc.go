// Package redis connects go-redis clients with retry and exposes a readiness probe.
//
// Redis is optional here: when REDIS_URL is empty Config.Enabled returns false
// and the webhook event log runs in memory instead.
package redis
