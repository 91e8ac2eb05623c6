// Package db declares the persistence interfaces of atacflux.
// Implementations live in subpackages: postgres for deployments with a
// database, memory for everything else.
package db

// Database bundles the store interfaces behind one handle.
type Database interface {
	Constraints() ConstraintInterface
	Close() error
}
