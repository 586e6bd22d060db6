// Package ui mounts preview routes for the presentational components.
// Responses are plain HTML, or datastar element patches when the request
// comes from a datastar action.
package ui
