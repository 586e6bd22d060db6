// Package requestid attaches a correlation id to every request.
//
// Middleware reuses a well-formed X-Request-ID header from the caller (the edge
// proxy in front of the functions sets one) or generates a UUID, stores it in
// the request context and echoes it in the response. LoggerExtractor plugs the
// id into pkg/logger so every record written while serving the request carries it.
package requestid
