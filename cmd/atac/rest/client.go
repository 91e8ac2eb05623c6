// Package rest is the HTTP client of the atacd API, used by the atac CLI.
package rest

import (
	"context"
	"net/http"
	"strings"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
	"github.com/atacflux/atacflux/pkg/utils"
)

// ReactionQuery narrows ListReactions.
type ReactionQuery struct {
	Query       string
	Limit       int
	Offset      int
	NonzeroFlux bool
}

// SearchQuery narrows the constraint-builder searches.
type SearchQuery struct {
	Query       string
	Compartment string
	Limit       int
}

type Client interface {
	// LoadModel makes the server (re)load its model. path may be empty
	// to use the server's configured or default locations.
	LoadModel(ctx context.Context, path string) (apigem.ModelInfo, error)

	// ModelInfo describes the loaded model.
	ModelInfo(ctx context.Context) (apigem.ModelInfo, error)

	// Compartments lists the model's compartments.
	Compartments(ctx context.Context) (apigem.CompartmentList, error)

	// Optimize runs FBA with the stored constraints applied.
	Optimize(ctx context.Context) (apiconstraints.OptimizeResult, error)

	// ListReactions pages through the model's reactions.
	ListReactions(ctx context.Context, q ReactionQuery) (apigem.ReactionPage, error)

	// GetReaction describes one reaction.
	GetReaction(ctx context.Context, rxnID string) (apigem.ReactionDetail, error)

	// GetMetabolite describes one metabolite with its producing and
	// consuming reactions.
	GetMetabolite(ctx context.Context, metID string) (apigem.MetaboliteDetail, error)

	// Subsystems lists subsystems.
	Subsystems(ctx context.Context) (apigem.SubsystemList, error)

	// SubsystemReactions lists the reactions of one subsystem.
	SubsystemReactions(ctx context.Context, name string) (apigem.SubsystemDetail, error)

	// ThermoStatus reports thermo cache availability.
	ThermoStatus(ctx context.Context) (apithermo.Status, error)

	// ThermoReaction fetches the thermo cache entry of one reaction.
	ThermoReaction(ctx context.Context, rxnID string) (apithermo.Reaction, error)

	// ListConstraints fetches the stored constraints and available presets.
	ListConstraints(ctx context.Context) (apiconstraints.List, error)

	// AddConstraint stores a new constraint.
	AddConstraint(ctx context.Context, req apiconstraints.AddRequest) (apiconstraints.Detail, error)

	// RemoveConstraint deletes one constraint.
	RemoveConstraint(ctx context.Context, id string) (apiconstraints.List, error)

	// ToggleConstraint sets (or, with nil, flips) the enabled state.
	ToggleConstraint(ctx context.Context, id string, enabled *bool) (apiconstraints.Detail, error)

	// ClearConstraints removes every constraint.
	ClearConstraints(ctx context.Context) (apiconstraints.List, error)

	// ApplyPreset stores the constraint of a named preset.
	ApplyPreset(ctx context.Context, name string) (apiconstraints.ApplyResult, error)

	// ExportConstraints signs the constraint set into a share token.
	ExportConstraints(ctx context.Context) (apiconstraints.ShareToken, error)

	// ImportConstraints stores the constraints carried by a share token.
	ImportConstraints(ctx context.Context, token string) (apiconstraints.List, error)

	// SearchReactions finds reactions for the constraint builder.
	SearchReactions(ctx context.Context, q SearchQuery) (apigem.ReactionSearchResult, error)

	// SearchMetabolites finds metabolites for the constraint builder.
	SearchMetabolites(ctx context.Context, q SearchQuery) (apigem.MetaboliteSearchResult, error)

	// SearchAnnotations resolves a database identifier to metabolites
	// and exchange reactions.
	SearchAnnotations(ctx context.Context, query string) (apigem.AnnotationSearchResult, error)
}

type client struct {
	httpclient *http.Client
	api        string
}

// NewClient makes a Client over apiRoot ("http://host:port/api").
func NewClient(apiRoot string) Client {
	return &client{
		httpclient: new(http.Client),
		api:        strings.TrimSuffix(apiRoot, "/"),
	}
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})
	return strings.Join(append([]string{c.api}, path...), "/")
}
