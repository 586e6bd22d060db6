// Package binder turns HTTP requests into typed values for handler.Wrap.
//
// JSON decodes the function request bodies. Raw hands webhook payloads over
// untouched together with their signature header.
package binder
