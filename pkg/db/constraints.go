package db

import (
	"context"
	"encoding/json"
	"errors"
)

// Constraint types.
const (
	TypeReaction = "reaction"
	TypeExchange = "exchange"
)

// ErrMissing: the constraint id does not exist.
var ErrMissing = errors.New("constraint not found")

// ErrExists: Add was called with an id already in the store.
var ErrExists = errors.New("constraint already exists")

// Constraint is a stored flux-bound override.
type Constraint struct {
	ID string

	// Type is "reaction" (Target names a reaction directly) or
	// "exchange" (Target names a metabolite whose exchange reaction is
	// resolved at apply time).
	Type   string
	Target string

	Lower float64
	Upper float64

	Label   string
	Enabled bool

	// BoundType ("fixed", "max", "min", "range") and TargetInfo are
	// client-owned editing state, stored verbatim.
	BoundType  string
	TargetInfo json.RawMessage
}

func (c Constraint) Equal(o Constraint) bool {
	return c.ID == o.ID &&
		c.Type == o.Type &&
		c.Target == o.Target &&
		c.Lower == o.Lower &&
		c.Upper == o.Upper &&
		c.Label == o.Label &&
		c.Enabled == o.Enabled &&
		c.BoundType == o.BoundType &&
		string(c.TargetInfo) == string(o.TargetInfo)
}

type ConstraintInterface interface {
	// List returns every stored constraint, keyed by id.
	List(ctx context.Context) (map[string]Constraint, error)

	// Get returns the constraint by id, or ErrMissing.
	Get(ctx context.Context, id string) (Constraint, error)

	// Add stores a new constraint. It fails with ErrExists when the id
	// is taken.
	Add(ctx context.Context, con Constraint) error

	// Put stores a constraint, overwriting any previous one with the
	// same id. Presets go through here.
	Put(ctx context.Context, con Constraint) error

	// PutAll stores every constraint in cons, overwriting on id
	// collision. All or nothing: when any write fails, no constraint
	// from cons is stored. Imports go through here.
	PutAll(ctx context.Context, cons []Constraint) error

	// Remove deletes the constraint by id, or fails with ErrMissing.
	Remove(ctx context.Context, id string) error

	// Toggle sets the enabled state of the constraint by id and returns
	// the updated record. Nil enabled flips the current state. Fails
	// with ErrMissing.
	Toggle(ctx context.Context, id string, enabled *bool) (Constraint, error)

	// Clear removes every constraint.
	Clear(ctx context.Context) error
}
