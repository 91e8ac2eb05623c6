// Package gem holds the in-memory representation of a genome-scale
// metabolic model (GEM) loaded from a COBRA-style JSON export.
package gem

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/atacflux/atacflux/pkg/utils"
)

type Model struct {
	ID           string
	Compartments map[string]string
	Metabolites  []*Metabolite
	Reactions    []*Reaction
	Genes        []Gene

	metsByID  map[string]*Metabolite
	rxnsByID  map[string]*Reaction
	rxnsOfMet map[string][]*Reaction
}

type Metabolite struct {
	ID          string
	Name        string
	Compartment string
	Formula     string
	Charge      int
	Annotation  Annotation
}

// Stoich is one participant of a reaction. Negative coefficients are
// substrates, positive ones products.
type Stoich struct {
	Metabolite  string
	Coefficient float64
}

type Reaction struct {
	ID                   string
	Name                 string
	Participants         []Stoich
	LowerBound           float64
	UpperBound           float64
	GeneRule             string
	Subsystem            string
	ObjectiveCoefficient float64
	Annotation           Annotation
}

type Gene struct {
	ID   string
	Name string
}

// Annotation maps identifier namespaces (kegg.compound, chebi, ...) to
// values. SBML exports use both single strings and string lists; both
// forms decode to a list here.
type Annotation map[string][]string

func (a *Annotation) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Annotation{}
	for key, val := range raw {
		var one string
		if err := json.Unmarshal(val, &one); err == nil {
			out[key] = []string{one}
			continue
		}
		var many []string
		if err := json.Unmarshal(val, &many); err == nil {
			out[key] = many
			continue
		}
		// non-string annotation (sbo term objects etc.); skip.
	}
	*a = out
	return nil
}

// Reversible follows the COBRA convention: a reaction is reversible
// iff it can carry negative flux.
func (r *Reaction) Reversible() bool {
	return r.LowerBound < 0
}

// IsExchange: boundary reactions have exactly one participant.
func (r *Reaction) IsExchange() bool {
	return len(r.Participants) == 1
}

// Coefficient returns the stoichiometric coefficient of metabolite metID
// in r, and whether the metabolite participates at all.
func (r *Reaction) Coefficient(metID string) (float64, bool) {
	for _, p := range r.Participants {
		if p.Metabolite == metID {
			return p.Coefficient, true
		}
	}
	return 0, false
}

func (m *Model) Metabolite(id string) (*Metabolite, bool) {
	met, ok := m.metsByID[id]
	return met, ok
}

func (m *Model) Reaction(id string) (*Reaction, bool) {
	rxn, ok := m.rxnsByID[id]
	return rxn, ok
}

// ReactionsOf lists the reactions metabolite metID participates in,
// in model order.
func (m *Model) ReactionsOf(metID string) []*Reaction {
	return m.rxnsOfMet[metID]
}

// CompartmentName resolves a compartment id to its display name,
// falling back to the id itself.
func (m *Model) CompartmentName(id string) string {
	if name, ok := m.Compartments[id]; ok && name != "" {
		return name
	}
	return id
}

// CompartmentsOf lists the compartments rxn spans, in participant order,
// deduplicated.
func (m *Model) CompartmentsOf(rxn *Reaction) []string {
	comps := []string{}
	for _, p := range rxn.Participants {
		if met, ok := m.metsByID[p.Metabolite]; ok {
			comps = append(comps, met.Compartment)
		}
	}
	return utils.Unique(comps)
}

// index (re)builds lookup tables after load. Reaction participants are
// ordered by metabolite id so that derived strings are deterministic.
func (m *Model) index() error {
	m.metsByID = make(map[string]*Metabolite, len(m.Metabolites))
	for _, met := range m.Metabolites {
		if _, dup := m.metsByID[met.ID]; dup {
			return fmt.Errorf("duplicated metabolite id: %s", met.ID)
		}
		m.metsByID[met.ID] = met
	}

	m.rxnsByID = make(map[string]*Reaction, len(m.Reactions))
	m.rxnsOfMet = map[string][]*Reaction{}
	for _, rxn := range m.Reactions {
		if _, dup := m.rxnsByID[rxn.ID]; dup {
			return fmt.Errorf("duplicated reaction id: %s", rxn.ID)
		}
		m.rxnsByID[rxn.ID] = rxn

		sort.Slice(rxn.Participants, func(i, j int) bool {
			return rxn.Participants[i].Metabolite < rxn.Participants[j].Metabolite
		})

		for _, p := range rxn.Participants {
			if _, ok := m.metsByID[p.Metabolite]; !ok {
				return fmt.Errorf(
					"reaction %s refers unknown metabolite: %s", rxn.ID, p.Metabolite,
				)
			}
			m.rxnsOfMet[p.Metabolite] = append(m.rxnsOfMet[p.Metabolite], rxn)
		}
	}

	return nil
}

// RawEquation renders the id-based equation, COBRA style:
// "s_0001 + 2 s_0002 --> s_0003", "<=>" when reversible,
// one-sided for exchange reactions.
func (m *Model) RawEquation(rxn *Reaction) string {
	subs, prods := []string{}, []string{}
	for _, p := range rxn.Participants {
		term := p.Metabolite
		if abs := absOf(p.Coefficient); abs != 1 {
			term = fmt.Sprintf("%g %s", abs, term)
		}
		if p.Coefficient < 0 {
			subs = append(subs, term)
		} else {
			prods = append(prods, term)
		}
	}

	arrow := "-->"
	if rxn.Reversible() {
		arrow = "<=>"
	}
	return strings.TrimSpace(
		strings.Join(subs, " + ") + " " + arrow + " " + strings.Join(prods, " + "),
	)
}

func absOf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
