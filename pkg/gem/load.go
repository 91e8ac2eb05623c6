package gem

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonModel mirrors the COBRA JSON export schema
// (cobra.io.save_json_model). SBML is not consumed here; models are
// expected to be exported to JSON beforehand.
type jsonModel struct {
	ID           string            `json:"id"`
	Compartments map[string]string `json:"compartments"`
	Metabolites  []jsonMetabolite  `json:"metabolites"`
	Reactions    []jsonReaction    `json:"reactions"`
	Genes        []jsonGene        `json:"genes"`
}

type jsonMetabolite struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Compartment string     `json:"compartment"`
	Formula     string     `json:"formula"`
	Charge      int        `json:"charge"`
	Annotation  Annotation `json:"annotation"`
}

type jsonReaction struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	Metabolites          map[string]float64 `json:"metabolites"`
	LowerBound           float64            `json:"lower_bound"`
	UpperBound           float64            `json:"upper_bound"`
	GeneReactionRule     string             `json:"gene_reaction_rule"`
	Subsystem            string             `json:"subsystem"`
	ObjectiveCoefficient float64            `json:"objective_coefficient"`
	Annotation           Annotation         `json:"annotation"`
}

type jsonGene struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Load reads a COBRA JSON model export from path.
func Load(path string) (*Model, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// Unmarshal parses a COBRA JSON model export.
func Unmarshal(content []byte) (*Model, error) {
	var jm jsonModel
	if err := json.Unmarshal(content, &jm); err != nil {
		return nil, fmt.Errorf("can not parse model: %w", err)
	}
	if len(jm.Reactions) == 0 {
		return nil, fmt.Errorf("model has no reactions")
	}

	m := &Model{
		ID:           jm.ID,
		Compartments: jm.Compartments,
		Metabolites:  make([]*Metabolite, 0, len(jm.Metabolites)),
		Reactions:    make([]*Reaction, 0, len(jm.Reactions)),
		Genes:        make([]Gene, 0, len(jm.Genes)),
	}
	if m.Compartments == nil {
		m.Compartments = map[string]string{}
	}

	for _, met := range jm.Metabolites {
		m.Metabolites = append(m.Metabolites, &Metabolite{
			ID:          met.ID,
			Name:        met.Name,
			Compartment: met.Compartment,
			Formula:     met.Formula,
			Charge:      met.Charge,
			Annotation:  met.Annotation,
		})
	}

	for _, rxn := range jm.Reactions {
		participants := make([]Stoich, 0, len(rxn.Metabolites))
		for metID, coef := range rxn.Metabolites {
			participants = append(participants, Stoich{Metabolite: metID, Coefficient: coef})
		}
		m.Reactions = append(m.Reactions, &Reaction{
			ID:                   rxn.ID,
			Name:                 rxn.Name,
			Participants:         participants,
			LowerBound:           rxn.LowerBound,
			UpperBound:           rxn.UpperBound,
			GeneRule:             rxn.GeneReactionRule,
			Subsystem:            rxn.Subsystem,
			ObjectiveCoefficient: rxn.ObjectiveCoefficient,
			Annotation:           rxn.Annotation,
		})
	}

	for _, g := range jm.Genes {
		m.Genes = append(m.Genes, Gene{ID: g.ID, Name: g.Name})
	}

	if err := m.index(); err != nil {
		return nil, err
	}
	return m, nil
}
