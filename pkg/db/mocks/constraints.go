// this package provide "mock" implementation of database for testing.
package mocks

import (
	"context"
	"errors"

	adb "github.com/atacflux/atacflux/pkg/db"
)

type MockDatabase struct {
	constraints *MockConstraintInterface
}

var _ adb.Database = &MockDatabase{}

func NewMockDatabase() *MockDatabase {
	return &MockDatabase{constraints: NewMockConstraintInterface()}
}

func (m *MockDatabase) Constraints() adb.ConstraintInterface {
	return m.constraints
}

// MockConstraints exposes the mock for wiring Impl functions in tests.
func (m *MockDatabase) MockConstraints() *MockConstraintInterface {
	return m.constraints
}

func (m *MockDatabase) Close() error {
	return nil
}

type MockConstraintInterface struct {
	Impl struct {
		List   func(context.Context) (map[string]adb.Constraint, error)
		Get    func(context.Context, string) (adb.Constraint, error)
		Add    func(context.Context, adb.Constraint) error
		Put    func(context.Context, adb.Constraint) error
		PutAll func(context.Context, []adb.Constraint) error
		Remove func(context.Context, string) error
		Toggle func(context.Context, string, *bool) (adb.Constraint, error)
		Clear  func(context.Context) error
	}
	Calls struct {
		List   uint
		Get    []string
		Add    []adb.Constraint
		Put    []adb.Constraint
		PutAll [][]adb.Constraint
		Remove []string
		Toggle []string
		Clear  uint
	}
}

var _ adb.ConstraintInterface = &MockConstraintInterface{}

func NewMockConstraintInterface() *MockConstraintInterface {
	return &MockConstraintInterface{}
}

func (m *MockConstraintInterface) List(ctx context.Context) (map[string]adb.Constraint, error) {
	m.Calls.List += 1
	if m.Impl.List == nil {
		return nil, errors.New("[MOCK] not implemented: List")
	}
	return m.Impl.List(ctx)
}

func (m *MockConstraintInterface) Get(ctx context.Context, id string) (adb.Constraint, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get == nil {
		return adb.Constraint{}, errors.New("[MOCK] not implemented: Get")
	}
	return m.Impl.Get(ctx, id)
}

func (m *MockConstraintInterface) Add(ctx context.Context, con adb.Constraint) error {
	m.Calls.Add = append(m.Calls.Add, con)
	if m.Impl.Add == nil {
		return errors.New("[MOCK] not implemented: Add")
	}
	return m.Impl.Add(ctx, con)
}

func (m *MockConstraintInterface) Put(ctx context.Context, con adb.Constraint) error {
	m.Calls.Put = append(m.Calls.Put, con)
	if m.Impl.Put == nil {
		return errors.New("[MOCK] not implemented: Put")
	}
	return m.Impl.Put(ctx, con)
}

func (m *MockConstraintInterface) PutAll(ctx context.Context, cons []adb.Constraint) error {
	m.Calls.PutAll = append(m.Calls.PutAll, cons)
	if m.Impl.PutAll == nil {
		return errors.New("[MOCK] not implemented: PutAll")
	}
	return m.Impl.PutAll(ctx, cons)
}

func (m *MockConstraintInterface) Remove(ctx context.Context, id string) error {
	m.Calls.Remove = append(m.Calls.Remove, id)
	if m.Impl.Remove == nil {
		return errors.New("[MOCK] not implemented: Remove")
	}
	return m.Impl.Remove(ctx, id)
}

func (m *MockConstraintInterface) Toggle(ctx context.Context, id string, enabled *bool) (adb.Constraint, error) {
	m.Calls.Toggle = append(m.Calls.Toggle, id)
	if m.Impl.Toggle == nil {
		return adb.Constraint{}, errors.New("[MOCK] not implemented: Toggle")
	}
	return m.Impl.Toggle(ctx, id, enabled)
}

func (m *MockConstraintInterface) Clear(ctx context.Context) error {
	m.Calls.Clear += 1
	if m.Impl.Clear == nil {
		return errors.New("[MOCK] not implemented: Clear")
	}
	return m.Impl.Clear(ctx)
}
