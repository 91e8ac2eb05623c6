// Package constraints declares the wire format of the constraint CRUD
// APIs: user-defined flux bound overrides, presets discovered from model
// annotations, and signed share tokens.
package constraints

import (
	"encoding/json"
	"fmt"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
)

const (
	TypeReaction = "reaction"
	TypeExchange = "exchange"
)

// Span is a flux bound override. Clients may send either a single
// number (a fixed flux: lower == upper) or a [lower, upper] pair.
// It always marshals as the pair form.
type Span struct {
	Lower float64
	Upper float64
}

func Fixed(v float64) Span {
	return Span{Lower: v, Upper: v}
}

func Between(lower, upper float64) Span {
	return Span{Lower: lower, Upper: upper}
}

func (s Span) Equal(o Span) bool {
	return s == o
}

func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.Lower, s.Upper})
}

func (s *Span) UnmarshalJSON(data []byte) error {
	var fixed float64
	if err := json.Unmarshal(data, &fixed); err == nil {
		s.Lower, s.Upper = fixed, fixed
		return nil
	}

	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("bounds should be a number or a [lower, upper] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("bounds should have exactly 2 elements, got %d", len(pair))
	}
	if pair[0] > pair[1] {
		return fmt.Errorf("lower bound %v exceeds upper bound %v", pair[0], pair[1])
	}
	s.Lower, s.Upper = pair[0], pair[1]
	return nil
}

// Detail is a stored constraint as served to clients.
type Detail struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Target     string          `json:"target"`
	Bounds     Span            `json:"bounds"`
	Label      string          `json:"label"`
	Enabled    bool            `json:"enabled"`
	BoundType  string          `json:"boundType,omitempty"`
	TargetInfo json.RawMessage `json:"targetInfo,omitempty"`
}

func (d Detail) Equal(o Detail) bool {
	return d.ID == o.ID &&
		d.Type == o.Type &&
		d.Target == o.Target &&
		d.Bounds == o.Bounds &&
		d.Label == o.Label &&
		d.Enabled == o.Enabled &&
		d.BoundType == o.BoundType &&
		string(d.TargetInfo) == string(o.TargetInfo)
}

// AddRequest is the body of POST /api/constraints. ID is optional;
// the server generates one when omitted.
type AddRequest struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Target     string          `json:"target"`
	Bounds     *Span           `json:"bounds"`
	Label      string          `json:"label"`
	BoundType  string          `json:"boundType"`
	TargetInfo json.RawMessage `json:"targetInfo"`
}

// ToggleRequest is the body of PUT /api/constraints/:id/enabled.
// Nil Enabled means "flip the current state".
type ToggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// List is the response of constraint-returning endpoints: the whole
// constraint set keyed by id, plus presets available for the loaded model.
type List struct {
	Constraints map[string]Detail `json:"constraints"`
	Presets     map[string]Preset `json:"presets,omitempty"`
}

// Preset is a predefined growth condition whose target reaction was
// discovered by annotation query, not hardcoded.
type Preset struct {
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Constraint  PresetDetail  `json:"constraint"`
	DerivedFrom *PresetOrigin `json:"derived_from,omitempty"`
}

type PresetDetail struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Target string `json:"target"`
	Bounds Span   `json:"bounds"`
	Label  string `json:"label"`
}

// PresetOrigin keeps the trail of the annotation lookup that resolved
// a preset, for transparency in the UI.
type PresetOrigin struct {
	Query            string                     `json:"query"`
	MetabolitesFound []apigem.MetaboliteSummary `json:"metabolites_found"`
	ExchangeReaction apigem.ExchangeSummary     `json:"exchange_reaction"`
	AllExchanges     []apigem.ExchangeSummary   `json:"all_exchanges"`
}

// ApplyResult reports the application of presets-and-constraints.
type ApplyResult struct {
	List
	Applied     *PresetDetail `json:"applied,omitempty"`
	DerivedFrom *PresetOrigin `json:"derived_from,omitempty"`
}

// ApplyReport is the per-constraint outcome of bound application before FBA.
type ApplyReport struct {
	Success  bool   `json:"success"`
	Reaction string `json:"reaction,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OptimizeResult is the response of POST /api/optimize: FBA outcome
// after resetting bounds and applying the enabled constraints.
type OptimizeResult struct {
	Status             string                 `json:"status"`
	ObjectiveValue     *float64               `json:"objective_value"`
	ConstraintsApplied map[string]ApplyReport `json:"constraints_applied"`
}

// ShareToken wraps an exported constraint set.
type ShareToken struct {
	Token string `json:"token"`
}

// ImportRequest is the body of POST /api/constraints/import.
type ImportRequest struct {
	Token string `json:"token"`
}
