// Package api implements the HTTP handlers, request/response models, and the
// error-to-status mapping for the public API surface.
package api
