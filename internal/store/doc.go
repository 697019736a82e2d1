// Package store defines the persistence interfaces consumed by the service
// layer, the query option value types, and the shared error taxonomy for
// store implementations.
package store
