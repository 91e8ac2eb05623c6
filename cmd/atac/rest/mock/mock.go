// Package mock provides a hand-written rest.Client for CLI tests.
package mock

import (
	"context"
	"testing"

	"github.com/atacflux/atacflux/cmd/atac/rest"
	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
)

type ToggleConstraintArgs struct {
	ID      string
	Enabled *bool
}

func New(t *testing.T) *mockClient {
	return &mockClient{t: t}
}

type mockClient struct {
	t    *testing.T
	Impl struct {
		LoadModel          func(ctx context.Context, path string) (apigem.ModelInfo, error)
		ModelInfo          func(ctx context.Context) (apigem.ModelInfo, error)
		Compartments       func(ctx context.Context) (apigem.CompartmentList, error)
		Optimize           func(ctx context.Context) (apiconstraints.OptimizeResult, error)
		ListReactions      func(ctx context.Context, q rest.ReactionQuery) (apigem.ReactionPage, error)
		GetReaction        func(ctx context.Context, rxnID string) (apigem.ReactionDetail, error)
		GetMetabolite      func(ctx context.Context, metID string) (apigem.MetaboliteDetail, error)
		Subsystems         func(ctx context.Context) (apigem.SubsystemList, error)
		SubsystemReactions func(ctx context.Context, name string) (apigem.SubsystemDetail, error)
		ThermoStatus       func(ctx context.Context) (apithermo.Status, error)
		ThermoReaction     func(ctx context.Context, rxnID string) (apithermo.Reaction, error)
		ListConstraints    func(ctx context.Context) (apiconstraints.List, error)
		AddConstraint      func(ctx context.Context, req apiconstraints.AddRequest) (apiconstraints.Detail, error)
		RemoveConstraint   func(ctx context.Context, id string) (apiconstraints.List, error)
		ToggleConstraint   func(ctx context.Context, id string, enabled *bool) (apiconstraints.Detail, error)
		ClearConstraints   func(ctx context.Context) (apiconstraints.List, error)
		ApplyPreset        func(ctx context.Context, name string) (apiconstraints.ApplyResult, error)
		ExportConstraints  func(ctx context.Context) (apiconstraints.ShareToken, error)
		ImportConstraints  func(ctx context.Context, token string) (apiconstraints.List, error)
		SearchReactions    func(ctx context.Context, q rest.SearchQuery) (apigem.ReactionSearchResult, error)
		SearchMetabolites  func(ctx context.Context, q rest.SearchQuery) (apigem.MetaboliteSearchResult, error)
		SearchAnnotations  func(ctx context.Context, query string) (apigem.AnnotationSearchResult, error)
	}
	Calls struct {
		LoadModel          []string
		ModelInfo          uint
		Compartments       uint
		Optimize           uint
		ListReactions      []rest.ReactionQuery
		GetReaction        []string
		GetMetabolite      []string
		Subsystems         uint
		SubsystemReactions []string
		ThermoStatus       uint
		ThermoReaction     []string
		ListConstraints    uint
		AddConstraint      []apiconstraints.AddRequest
		RemoveConstraint   []string
		ToggleConstraint   []ToggleConstraintArgs
		ClearConstraints   uint
		ApplyPreset        []string
		ExportConstraints  uint
		ImportConstraints  []string
		SearchReactions    []rest.SearchQuery
		SearchMetabolites  []rest.SearchQuery
		SearchAnnotations  []string
	}
}

var _ rest.Client = &mockClient{}

func (m *mockClient) LoadModel(ctx context.Context, path string) (apigem.ModelInfo, error) {
	m.t.Helper()
	m.Calls.LoadModel = append(m.Calls.LoadModel, path)
	if m.Impl.LoadModel == nil {
		m.t.Fatal("LoadModel is not ready to be called")
	}
	return m.Impl.LoadModel(ctx, path)
}

func (m *mockClient) ModelInfo(ctx context.Context) (apigem.ModelInfo, error) {
	m.t.Helper()
	m.Calls.ModelInfo += 1
	if m.Impl.ModelInfo == nil {
		m.t.Fatal("ModelInfo is not ready to be called")
	}
	return m.Impl.ModelInfo(ctx)
}

func (m *mockClient) Compartments(ctx context.Context) (apigem.CompartmentList, error) {
	m.t.Helper()
	m.Calls.Compartments += 1
	if m.Impl.Compartments == nil {
		m.t.Fatal("Compartments is not ready to be called")
	}
	return m.Impl.Compartments(ctx)
}

func (m *mockClient) Optimize(ctx context.Context) (apiconstraints.OptimizeResult, error) {
	m.t.Helper()
	m.Calls.Optimize += 1
	if m.Impl.Optimize == nil {
		m.t.Fatal("Optimize is not ready to be called")
	}
	return m.Impl.Optimize(ctx)
}

func (m *mockClient) ListReactions(ctx context.Context, q rest.ReactionQuery) (apigem.ReactionPage, error) {
	m.t.Helper()
	m.Calls.ListReactions = append(m.Calls.ListReactions, q)
	if m.Impl.ListReactions == nil {
		m.t.Fatal("ListReactions is not ready to be called")
	}
	return m.Impl.ListReactions(ctx, q)
}

func (m *mockClient) GetReaction(ctx context.Context, rxnID string) (apigem.ReactionDetail, error) {
	m.t.Helper()
	m.Calls.GetReaction = append(m.Calls.GetReaction, rxnID)
	if m.Impl.GetReaction == nil {
		m.t.Fatal("GetReaction is not ready to be called")
	}
	return m.Impl.GetReaction(ctx, rxnID)
}

func (m *mockClient) GetMetabolite(ctx context.Context, metID string) (apigem.MetaboliteDetail, error) {
	m.t.Helper()
	m.Calls.GetMetabolite = append(m.Calls.GetMetabolite, metID)
	if m.Impl.GetMetabolite == nil {
		m.t.Fatal("GetMetabolite is not ready to be called")
	}
	return m.Impl.GetMetabolite(ctx, metID)
}

func (m *mockClient) Subsystems(ctx context.Context) (apigem.SubsystemList, error) {
	m.t.Helper()
	m.Calls.Subsystems += 1
	if m.Impl.Subsystems == nil {
		m.t.Fatal("Subsystems is not ready to be called")
	}
	return m.Impl.Subsystems(ctx)
}

func (m *mockClient) SubsystemReactions(ctx context.Context, name string) (apigem.SubsystemDetail, error) {
	m.t.Helper()
	m.Calls.SubsystemReactions = append(m.Calls.SubsystemReactions, name)
	if m.Impl.SubsystemReactions == nil {
		m.t.Fatal("SubsystemReactions is not ready to be called")
	}
	return m.Impl.SubsystemReactions(ctx, name)
}

func (m *mockClient) ThermoStatus(ctx context.Context) (apithermo.Status, error) {
	m.t.Helper()
	m.Calls.ThermoStatus += 1
	if m.Impl.ThermoStatus == nil {
		m.t.Fatal("ThermoStatus is not ready to be called")
	}
	return m.Impl.ThermoStatus(ctx)
}

func (m *mockClient) ThermoReaction(ctx context.Context, rxnID string) (apithermo.Reaction, error) {
	m.t.Helper()
	m.Calls.ThermoReaction = append(m.Calls.ThermoReaction, rxnID)
	if m.Impl.ThermoReaction == nil {
		m.t.Fatal("ThermoReaction is not ready to be called")
	}
	return m.Impl.ThermoReaction(ctx, rxnID)
}

func (m *mockClient) ListConstraints(ctx context.Context) (apiconstraints.List, error) {
	m.t.Helper()
	m.Calls.ListConstraints += 1
	if m.Impl.ListConstraints == nil {
		m.t.Fatal("ListConstraints is not ready to be called")
	}
	return m.Impl.ListConstraints(ctx)
}

func (m *mockClient) AddConstraint(ctx context.Context, req apiconstraints.AddRequest) (apiconstraints.Detail, error) {
	m.t.Helper()
	m.Calls.AddConstraint = append(m.Calls.AddConstraint, req)
	if m.Impl.AddConstraint == nil {
		m.t.Fatal("AddConstraint is not ready to be called")
	}
	return m.Impl.AddConstraint(ctx, req)
}

func (m *mockClient) RemoveConstraint(ctx context.Context, id string) (apiconstraints.List, error) {
	m.t.Helper()
	m.Calls.RemoveConstraint = append(m.Calls.RemoveConstraint, id)
	if m.Impl.RemoveConstraint == nil {
		m.t.Fatal("RemoveConstraint is not ready to be called")
	}
	return m.Impl.RemoveConstraint(ctx, id)
}

func (m *mockClient) ToggleConstraint(ctx context.Context, id string, enabled *bool) (apiconstraints.Detail, error) {
	m.t.Helper()
	m.Calls.ToggleConstraint = append(m.Calls.ToggleConstraint, ToggleConstraintArgs{ID: id, Enabled: enabled})
	if m.Impl.ToggleConstraint == nil {
		m.t.Fatal("ToggleConstraint is not ready to be called")
	}
	return m.Impl.ToggleConstraint(ctx, id, enabled)
}

func (m *mockClient) ClearConstraints(ctx context.Context) (apiconstraints.List, error) {
	m.t.Helper()
	m.Calls.ClearConstraints += 1
	if m.Impl.ClearConstraints == nil {
		m.t.Fatal("ClearConstraints is not ready to be called")
	}
	return m.Impl.ClearConstraints(ctx)
}

func (m *mockClient) ApplyPreset(ctx context.Context, name string) (apiconstraints.ApplyResult, error) {
	m.t.Helper()
	m.Calls.ApplyPreset = append(m.Calls.ApplyPreset, name)
	if m.Impl.ApplyPreset == nil {
		m.t.Fatal("ApplyPreset is not ready to be called")
	}
	return m.Impl.ApplyPreset(ctx, name)
}

func (m *mockClient) ExportConstraints(ctx context.Context) (apiconstraints.ShareToken, error) {
	m.t.Helper()
	m.Calls.ExportConstraints += 1
	if m.Impl.ExportConstraints == nil {
		m.t.Fatal("ExportConstraints is not ready to be called")
	}
	return m.Impl.ExportConstraints(ctx)
}

func (m *mockClient) ImportConstraints(ctx context.Context, token string) (apiconstraints.List, error) {
	m.t.Helper()
	m.Calls.ImportConstraints = append(m.Calls.ImportConstraints, token)
	if m.Impl.ImportConstraints == nil {
		m.t.Fatal("ImportConstraints is not ready to be called")
	}
	return m.Impl.ImportConstraints(ctx, token)
}

func (m *mockClient) SearchReactions(ctx context.Context, q rest.SearchQuery) (apigem.ReactionSearchResult, error) {
	m.t.Helper()
	m.Calls.SearchReactions = append(m.Calls.SearchReactions, q)
	if m.Impl.SearchReactions == nil {
		m.t.Fatal("SearchReactions is not ready to be called")
	}
	return m.Impl.SearchReactions(ctx, q)
}

func (m *mockClient) SearchMetabolites(ctx context.Context, q rest.SearchQuery) (apigem.MetaboliteSearchResult, error) {
	m.t.Helper()
	m.Calls.SearchMetabolites = append(m.Calls.SearchMetabolites, q)
	if m.Impl.SearchMetabolites == nil {
		m.t.Fatal("SearchMetabolites is not ready to be called")
	}
	return m.Impl.SearchMetabolites(ctx, q)
}

func (m *mockClient) SearchAnnotations(ctx context.Context, query string) (apigem.AnnotationSearchResult, error) {
	m.t.Helper()
	m.Calls.SearchAnnotations = append(m.Calls.SearchAnnotations, query)
	if m.Impl.SearchAnnotations == nil {
		m.t.Fatal("SearchAnnotations is not ready to be called")
	}
	return m.Impl.SearchAnnotations(ctx, query)
}
