// Package pointer helps building *T values inline, for optional wire
// fields and literals in tests.
package pointer

// Ref returns a pointer to t. Use it where Go syntax refuses &literal.
func Ref[T any](t T) *T {
	return &t
}
