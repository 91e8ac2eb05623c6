// Package gem declares the wire format of the model-facing APIs:
// model info, compartments, reaction listing/detail, metabolite
// pathway context, subsystems and the constraint-builder searches.
package gem

import (
	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
	"github.com/atacflux/atacflux/pkg/utils/cmp"
)

// LoadRequest is the (optional) body of POST /api/model/load. Empty
// Path falls back to the configured model and the default search paths.
type LoadRequest struct {
	Path string `json:"path"`
}

type ModelInfo struct {
	ID          string `json:"id"`
	Reactions   int    `json:"reactions"`
	Metabolites int    `json:"metabolites"`
	Genes       int    `json:"genes"`
	Path        string `json:"path"`
}

func (m ModelInfo) Equal(o ModelInfo) bool {
	return m == o
}

type Compartment struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MetaboliteCount int    `json:"metabolite_count"`
	Color           string `json:"color"`
}

type CompartmentList struct {
	Compartments []Compartment `json:"compartments"`
}

// Bounds is a [lower, upper] pair, serialized as a 2-element array.
type Bounds [2]float64

func (b Bounds) Lower() float64 { return b[0] }
func (b Bounds) Upper() float64 { return b[1] }

// ReactionSummary is one row of the paginated reaction list.
type ReactionSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Equation     string   `json:"equation"`
	Bounds       Bounds   `json:"bounds"`
	Genes        string   `json:"genes"`
	Subsystem    string   `json:"subsystem"`
	Flux         *float64 `json:"flux"`
	LocationType string   `json:"location_type"`
	Location     string   `json:"location"`
	Compartments []string `json:"compartments"`
}

func (r ReactionSummary) Equal(o ReactionSummary) bool {
	return r.ID == o.ID &&
		r.Name == o.Name &&
		r.Equation == o.Equation &&
		r.Bounds == o.Bounds &&
		r.Genes == o.Genes &&
		r.Subsystem == o.Subsystem &&
		eqFloatPtr(r.Flux, o.Flux) &&
		r.LocationType == o.LocationType &&
		r.Location == o.Location &&
		cmp.SliceEq(r.Compartments, o.Compartments)
}

type ReactionPage struct {
	Reactions []ReactionSummary `json:"reactions"`
	Total     int               `json:"total"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
}

// MetaboliteRef is one stoichiometric participant of a reaction.
type MetaboliteRef struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Coefficient     float64             `json:"coefficient"`
	Compartment     string              `json:"compartment"`
	CompartmentName string              `json:"compartment_name"`
	Thermo          *apithermo.Compound `json:"thermo"`
}

type ReactionDetail struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	EquationRaw  string              `json:"equation_raw"`
	Equation     string              `json:"equation"`
	LocationType string              `json:"location_type"`
	Location     string              `json:"location"`
	LowerBound   float64             `json:"lower_bound"`
	UpperBound   float64             `json:"upper_bound"`
	Genes        string              `json:"genes"`
	Subsystem    string              `json:"subsystem"`
	Reversible   bool                `json:"reversible"`
	Substrates   []MetaboliteRef     `json:"substrates"`
	Products     []MetaboliteRef     `json:"products"`
	Thermo       *apithermo.Reaction `json:"thermo"`
	EC           []string            `json:"ec,omitempty"`
	Kegg         []string            `json:"kegg,omitempty"`
	Flux         *float64            `json:"flux,omitempty"`
}

// PathwayReaction is a reaction as listed in metabolite / subsystem
// contexts: equation info plus flattened thermo and flux.
type PathwayReaction struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	EquationRaw    string   `json:"equation_raw"`
	Equation       string   `json:"equation"`
	LocationType   string   `json:"location_type"`
	Location       string   `json:"location"`
	Genes          string   `json:"genes"`
	Subsystem      string   `json:"subsystem"`
	DGPrime        *float64 `json:"dG_prime,omitempty"`
	Uncertainty    *float64 `json:"uncertainty,omitempty"`
	FormulaQueried *string  `json:"formula_queried,omitempty"`
	Flux           *float64 `json:"flux,omitempty"`
}

type MetaboliteDetail struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Compartment     string              `json:"compartment"`
	CompartmentName string              `json:"compartment_name"`
	Formula         string              `json:"formula"`
	Thermo          *apithermo.Compound `json:"thermo"`
	Producing       []PathwayReaction   `json:"producing"`
	Consuming       []PathwayReaction   `json:"consuming"`
}

type Subsystem struct {
	Name      string   `json:"name"`
	Count     int      `json:"count"`
	Reactions []string `json:"reactions"`
}

func (s Subsystem) Equal(o Subsystem) bool {
	return s.Name == o.Name && s.Count == o.Count && cmp.SliceEq(s.Reactions, o.Reactions)
}

type SubsystemList struct {
	Subsystems []Subsystem `json:"subsystems"`
}

type SubsystemDetail struct {
	Subsystem string            `json:"subsystem"`
	Reactions []PathwayReaction `json:"reactions"`
}

// ReactionHit is one result of the constraint-builder reaction search.
type ReactionHit struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Bounds       Bounds `json:"bounds"`
	Equation     string `json:"equation"`
	EquationRaw  string `json:"equation_raw"`
	LocationType string `json:"location_type"`
	Location     string `json:"location"`
	IsExchange   bool   `json:"is_exchange"`
}

type ReactionSearchResult struct {
	Results []ReactionHit `json:"results"`
}

// MetaboliteReactionHit is a reaction listed under a metabolite search
// hit, described relative to the metabolite it was found through.
type MetaboliteReactionHit struct {
	ReactionHit
	Description string `json:"description"`
}

type MetaboliteHit struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Compartment     string                  `json:"compartment"`
	CompartmentName string                  `json:"compartment_name"`
	Reactions       []MetaboliteReactionHit `json:"reactions"`
	ReactionCount   int                     `json:"reaction_count"`
}

type MetaboliteSearchResult struct {
	Results []MetaboliteHit `json:"results"`
}

// AnnotationSearchResult is the outcome of a database-identifier query
// (KEGG, ChEBI, MetaNetX, BiGG or name).
type AnnotationSearchResult struct {
	Query       string              `json:"query"`
	Metabolites []MetaboliteSummary `json:"metabolites"`
	Exchanges   []ExchangeSummary   `json:"exchanges"`
}

type MetaboliteSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Compartment string `json:"compartment"`
}

func (m MetaboliteSummary) Equal(o MetaboliteSummary) bool {
	return m == o
}

type ExchangeSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Bounds Bounds `json:"bounds"`
}

func (e ExchangeSummary) Equal(o ExchangeSummary) bool {
	return e == o
}

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
