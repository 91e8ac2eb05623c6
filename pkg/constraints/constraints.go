// Package constraints applies stored flux-bound overrides to the model
// and discovers preset growth conditions from model annotations.
package constraints

import (
	"fmt"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	"github.com/atacflux/atacflux/pkg/annotations"
	"github.com/atacflux/atacflux/pkg/db"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// ApplyToModel overwrites reaction bounds with the enabled constraints
// and reports the outcome per constraint id. Disabled constraints are
// skipped silently; a constraint whose target cannot be resolved fails
// in its report without aborting the rest.
func ApplyToModel(m *gem.Model, cons map[string]db.Constraint) map[string]apiconstraints.ApplyReport {
	reports := map[string]apiconstraints.ApplyReport{}

	for id, con := range cons {
		if !con.Enabled {
			continue
		}

		switch con.Type {
		case db.TypeReaction:
			rxn, ok := m.Reaction(con.Target)
			if !ok {
				reports[id] = apiconstraints.ApplyReport{
					Error: fmt.Sprintf("reaction %s not found", con.Target),
				}
				continue
			}
			rxn.LowerBound, rxn.UpperBound = con.Lower, con.Upper
			reports[id] = apiconstraints.ApplyReport{Success: true}

		case db.TypeExchange:
			rxn := resolveExchange(m, con.Target)
			if rxn == nil {
				reports[id] = apiconstraints.ApplyReport{
					Error: fmt.Sprintf("no exchange reaction for %s", con.Target),
				}
				continue
			}
			rxn.LowerBound, rxn.UpperBound = con.Lower, con.Upper
			reports[id] = apiconstraints.ApplyReport{Success: true, Reaction: rxn.ID}

		default:
			reports[id] = apiconstraints.ApplyReport{
				Error: fmt.Sprintf("unknown constraint type %q", con.Type),
			}
		}
	}
	return reports
}

// resolveExchange accepts either a reaction id (the constraint builder
// lets users pick the exchange directly) or a metabolite id, in which
// case the first exchange reaction touching it wins.
func resolveExchange(m *gem.Model, target string) *gem.Reaction {
	if rxn, ok := m.Reaction(target); ok {
		return rxn
	}
	met, ok := m.Metabolite(target)
	if !ok {
		return nil
	}
	exchanges := annotations.FindExchangeReactions(m, met)
	if len(exchanges) == 0 {
		return nil
	}
	return exchanges[0]
}

// presetDef describes a growth condition in terms of database
// identifiers, so presets adapt to whatever model is loaded instead of
// assuming reaction ids.
type presetDef struct {
	name             string
	label            string
	description      string
	queries          []string // tried in order until one resolves
	bounds           apiconstraints.Span
	boundDescription string
}

var presetDefs = []presetDef{
	{
		name:             "anaerobic",
		label:            "Anaerobic",
		description:      "No oxygen uptake",
		queries:          []string{"C00007", "oxygen", "O2"},
		bounds:           apiconstraints.Fixed(0),
		boundDescription: "= 0",
	},
	{
		name:             "glucose_limited",
		label:            "Glucose limited",
		description:      "Restrict glucose uptake",
		queries:          []string{"C00031", "glucose", "D-glucose"},
		bounds:           apiconstraints.Between(-1, 0),
		boundDescription: "≤ 1 mmol/gDW/h",
	},
	{
		name:             "no_ethanol",
		label:            "No ethanol",
		description:      "Block ethanol production",
		queries:          []string{"C00469", "ethanol"},
		bounds:           apiconstraints.Fixed(0),
		boundDescription: "= 0",
	},
}

// PresetID is the constraint id a preset is stored under. Reapplying a
// preset overwrites its previous constraint instead of stacking.
func PresetID(name string) string {
	return "preset_" + name
}

// AvailablePresets resolves every preset definition against the loaded
// model. Presets whose metabolite cannot be found (e.g. a reduced model
// without ethanol) are left out.
func AvailablePresets(m *gem.Model, store *thermo.Store) map[string]apiconstraints.Preset {
	available := map[string]apiconstraints.Preset{}
	for _, def := range presetDefs {
		if preset, ok := buildPreset(m, store, def); ok {
			available[def.name] = preset
		}
	}
	return available
}

// Preset returns one resolved preset by name.
func Preset(m *gem.Model, store *thermo.Store, name string) (apiconstraints.Preset, bool) {
	for _, def := range presetDefs {
		if def.name == name {
			return buildPreset(m, store, def)
		}
	}
	return apiconstraints.Preset{}, false
}

func buildPreset(m *gem.Model, store *thermo.Store, def presetDef) (apiconstraints.Preset, bool) {
	for _, query := range def.queries {
		result := annotations.FindExchangeByQuery(m, store, query)
		if len(result.Exchanges) == 0 {
			continue
		}

		exchange := result.Exchanges[0]
		labelFor := query
		if len(result.Metabolites) > 0 {
			labelFor = result.Metabolites[0].Name
		}

		return apiconstraints.Preset{
			Label:       def.label,
			Description: def.description,
			Constraint: apiconstraints.PresetDetail{
				ID:     PresetID(def.name),
				Type:   db.TypeReaction,
				Target: exchange.ID,
				Bounds: def.bounds,
				Label:  fmt.Sprintf("%s: %s", labelFor, def.boundDescription),
			},
			DerivedFrom: &apiconstraints.PresetOrigin{
				Query:            query,
				MetabolitesFound: result.Metabolites,
				ExchangeReaction: exchange,
				AllExchanges:     result.Exchanges,
			},
		}, true
	}
	return apiconstraints.Preset{}, false
}

// RecordOf turns a resolved preset into its storable constraint.
func RecordOf(p apiconstraints.Preset) db.Constraint {
	return db.Constraint{
		ID:      p.Constraint.ID,
		Type:    p.Constraint.Type,
		Target:  p.Constraint.Target,
		Lower:   p.Constraint.Bounds.Lower,
		Upper:   p.Constraint.Bounds.Upper,
		Label:   p.Constraint.Label,
		Enabled: true,
	}
}

// ComposeDetail renders a stored constraint for the API.
func ComposeDetail(con db.Constraint) apiconstraints.Detail {
	return apiconstraints.Detail{
		ID:         con.ID,
		Type:       con.Type,
		Target:     con.Target,
		Bounds:     apiconstraints.Between(con.Lower, con.Upper),
		Label:      con.Label,
		Enabled:    con.Enabled,
		BoundType:  con.BoundType,
		TargetInfo: con.TargetInfo,
	}
}

// ComposeList renders a whole constraint set for the API.
func ComposeList(cons map[string]db.Constraint) map[string]apiconstraints.Detail {
	out := make(map[string]apiconstraints.Detail, len(cons))
	for id, con := range cons {
		out[id] = ComposeDetail(con)
	}
	return out
}
