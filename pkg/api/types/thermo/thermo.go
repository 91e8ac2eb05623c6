// Package thermo declares the wire format of the precomputed
// eQuilibrator caches (reactions_thermo.json / compounds_thermo.json)
// and of the thermo APIs serving them.
package thermo

import (
	"encoding/json"
)

// Reaction is one entry of the reaction thermodynamics cache.
type Reaction struct {
	Name           string         `json:"name"`
	Reaction       ReactionInfo   `json:"reaction"`
	Thermodynamics Thermodynamics `json:"thermodynamics"`
	Errors         []CacheError   `json:"errors"`
	References     References     `json:"references"`
}

type ReactionInfo struct {
	Equation      string                    `json:"equation"`
	Stoichiometry map[string]float64        `json:"stoichiometry"`
	Metabolites   map[string]MetaboliteInfo `json:"metabolites"`
}

type MetaboliteInfo struct {
	Name                string  `json:"name"`
	Coef                float64 `json:"coef"`
	InCache             bool    `json:"in_cache"`
	FoundInEquilibrator bool    `json:"found_in_equilibrator"`
	QueriedAs           *string `json:"queried_as"`
}

// Thermodynamics carries ΔG'° and how it was obtained. The calculation
// method decides which of the optional fields are present: transmembrane
// H+ transport adds compartment pH / membrane potential details, redox
// carrier calculations list the couples used.
type Thermodynamics struct {
	DGPrime        *float64 `json:"dG_prime"`
	Uncertainty    *float64 `json:"uncertainty"`
	FormulaQueried *string  `json:"formula_queried"`

	Method      string   `json:"method,omitempty"`
	CouplesUsed []string `json:"couples_used,omitempty"`
	Note        string   `json:"note,omitempty"`

	Membrane            string             `json:"membrane,omitempty"`
	InnerCompartment    string             `json:"inner_compartment,omitempty"`
	OuterCompartment    string             `json:"outer_compartment,omitempty"`
	InnerPH             *float64           `json:"inner_pH,omitempty"`
	OuterPH             *float64           `json:"outer_pH,omitempty"`
	MembranePotentialMV *float64           `json:"membrane_potential_mV,omitempty"`
	DGChemistry         *float64           `json:"dG_chemistry,omitempty"`
	DGMembrane          *float64           `json:"dG_membrane,omitempty"`
	DGPerProton         *float64           `json:"dG_per_proton,omitempty"`
	VectorialProtons    *float64           `json:"vectorial_protons,omitempty"`
	ProtonStoichiometry map[string]float64 `json:"proton_stoichiometry,omitempty"`
}

// CacheError records one failed ΔG'° derivation attempt. Which fields
// are set depends on the error type: metabolite lookups fill
// Metabolites, transmembrane H+ transport failures fill the half-reaction
// formulas, redox carrier failures list the couples tried.
type CacheError struct {
	Type             string   `json:"type"`
	Message          string   `json:"message,omitempty"`
	Metabolites      []string `json:"metabolites,omitempty"`
	CouplesAttempted []string `json:"couples_attempted,omitempty"`
	InnerFormula     string   `json:"inner_formula,omitempty"`
	OuterFormula     string   `json:"outer_formula,omitempty"`
}

type References struct {
	KeggReaction FlexStrings `json:"kegg_reaction"`
	EC           FlexStrings `json:"ec"`
}

// Compound is one entry of the compound identifier-mapping cache.
type Compound struct {
	Name            string       `json:"name"`
	QueriedAs       *string      `json:"queried_as"`
	QuerySource     *string      `json:"query_source"`
	MatchedInchiKey *string      `json:"matched_inchi_key"`
	Errors          []QueryError `json:"errors,omitempty"`
	Identifiers     Identifiers  `json:"identifiers"`
}

// QueryError records one failed identifier lookup during cache generation.
type QueryError struct {
	Source string `json:"source"`
	Query  string `json:"query"`
	Error  string `json:"error"`
	Found  bool   `json:"found"`
}

type Identifiers struct {
	Kegg     *string  `json:"kegg"`
	Chebi    *string  `json:"chebi"`
	Metanetx *string  `json:"metanetx"`
	Bigg     *string  `json:"bigg"`
	YeastGem []string `json:"yeast_gem"`
}

// Status reports availability of the caches.
type Status struct {
	Available      bool `json:"available"`
	Loaded         bool `json:"loaded"`
	ReactionsCount int  `json:"reactions_count"`
	CompoundsCount int  `json:"compounds_count"`
}

// CacheResponse is the full reaction cache as served to clients.
type CacheResponse struct {
	Reactions map[string]Reaction `json:"reactions"`
}

// FlexStrings accepts JSON that is either a single string or a list of
// strings; the SBML annotations the cache is derived from use both forms.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = FlexStrings{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		// null or unexpected shape. treat as absent.
		*f = nil
		return nil
	}
	*f = FlexStrings(many)
	return nil
}

func (f FlexStrings) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	return json.Marshal([]string(f))
}
