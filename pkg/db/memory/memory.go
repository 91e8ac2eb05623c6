// Package memory implements pkg/db in process memory, for deployments
// without a database. Constraints do not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/atacflux/atacflux/pkg/db"
)

type memDatabase struct {
	constraints *memConstraint
}

var _ db.Database = &memDatabase{}

func New() db.Database {
	return &memDatabase{
		constraints: &memConstraint{
			store: map[string]db.Constraint{},
		},
	}
}

func (d *memDatabase) Constraints() db.ConstraintInterface {
	return d.constraints
}

func (d *memDatabase) Close() error {
	return nil
}

type memConstraint struct {
	mu    sync.Mutex
	store map[string]db.Constraint
}

var _ db.ConstraintInterface = &memConstraint{}

func (m *memConstraint) List(context.Context) (map[string]db.Constraint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]db.Constraint, len(m.store))
	for id, con := range m.store {
		out[id] = con
	}
	return out, nil
}

func (m *memConstraint) Get(_ context.Context, id string) (db.Constraint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	con, ok := m.store[id]
	if !ok {
		return db.Constraint{}, db.ErrMissing
	}
	return con, nil
}

func (m *memConstraint) Add(_ context.Context, con db.Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store[con.ID]; ok {
		return db.ErrExists
	}
	m.store[con.ID] = con
	return nil
}

func (m *memConstraint) Put(_ context.Context, con db.Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[con.ID] = con
	return nil
}

func (m *memConstraint) PutAll(_ context.Context, cons []db.Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, con := range cons {
		m.store[con.ID] = con
	}
	return nil
}

func (m *memConstraint) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.store[id]; !ok {
		return db.ErrMissing
	}
	delete(m.store, id)
	return nil
}

func (m *memConstraint) Toggle(_ context.Context, id string, enabled *bool) (db.Constraint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	con, ok := m.store[id]
	if !ok {
		return db.Constraint{}, db.ErrMissing
	}
	if enabled == nil {
		con.Enabled = !con.Enabled
	} else {
		con.Enabled = *enabled
	}
	m.store[id] = con
	return con, nil
}

func (m *memConstraint) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = map[string]db.Constraint{}
	return nil
}
