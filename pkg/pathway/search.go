package pathway

import (
	"sort"
	"strings"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/utils"
)

// SearchQuery narrows the constraint-builder searches.
type SearchQuery struct {
	// Query matches id or name, case-insensitively. Empty matches all.
	Query string

	// Compartment keeps only entries touching this compartment id.
	Compartment string

	Limit int
}

// SearchReactions finds reactions by id or name for the constraint
// builder. Scanning stops once Limit hits are collected.
func SearchReactions(m *gem.Model, q SearchQuery) apigem.ReactionSearchResult {
	query := strings.ToLower(q.Query)

	results := []apigem.ReactionHit{}
	for _, rxn := range m.Reactions {
		if q.Compartment != "" && !touchesCompartment(m, rxn, q.Compartment) {
			continue
		}
		if !strings.Contains(strings.ToLower(rxn.ID), query) &&
			!strings.Contains(strings.ToLower(rxn.Name), query) {
			continue
		}

		results = append(results, reactionHit(m, rxn))
		if len(results) >= q.Limit {
			break
		}
	}
	return apigem.ReactionSearchResult{Results: results}
}

// SearchMetabolites finds metabolites by id or name, each carrying all
// its reactions described relative to it. Exchange reactions sort
// first within a metabolite; metabolites with an exchange sort first
// overall, since the constraint builder mostly targets uptake rates.
func SearchMetabolites(m *gem.Model, q SearchQuery) apigem.MetaboliteSearchResult {
	query := strings.ToLower(q.Query)

	results := []apigem.MetaboliteHit{}
	for _, met := range m.Metabolites {
		if q.Compartment != "" && met.Compartment != q.Compartment {
			continue
		}
		if !strings.Contains(strings.ToLower(met.ID), query) &&
			!strings.Contains(strings.ToLower(met.Name), query) {
			continue
		}

		reactions := utils.Map(m.ReactionsOf(met.ID), func(rxn *gem.Reaction) apigem.MetaboliteReactionHit {
			return apigem.MetaboliteReactionHit{
				ReactionHit: reactionHit(m, rxn),
				Description: m.DescribeFor(rxn, met),
			}
		})
		sort.SliceStable(reactions, func(i, j int) bool {
			if reactions[i].IsExchange != reactions[j].IsExchange {
				return reactions[i].IsExchange
			}
			return reactions[i].ID < reactions[j].ID
		})

		results = append(results, apigem.MetaboliteHit{
			ID:              met.ID,
			Name:            met.Name,
			Compartment:     met.Compartment,
			CompartmentName: m.CompartmentName(met.Compartment),
			Reactions:       reactions,
			ReactionCount:   len(reactions),
		})
		if len(results) >= q.Limit {
			break
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ei, ej := hasExchange(results[i]), hasExchange(results[j])
		if ei != ej {
			return ei
		}
		if results[i].ReactionCount != results[j].ReactionCount {
			return results[i].ReactionCount < results[j].ReactionCount
		}
		return results[i].ID < results[j].ID
	})
	return apigem.MetaboliteSearchResult{Results: results}
}

func reactionHit(m *gem.Model, rxn *gem.Reaction) apigem.ReactionHit {
	info := m.ReactionInfo(rxn, true)
	return apigem.ReactionHit{
		ID:           rxn.ID,
		Name:         rxn.Name,
		Bounds:       apigem.Bounds{rxn.LowerBound, rxn.UpperBound},
		Equation:     info.Equation,
		EquationRaw:  info.EquationRaw,
		LocationType: info.LocationType,
		Location:     info.Location,
		IsExchange:   info.IsExchange,
	}
}

func touchesCompartment(m *gem.Model, rxn *gem.Reaction, compartment string) bool {
	for _, c := range m.CompartmentsOf(rxn) {
		if c == compartment {
			return true
		}
	}
	return false
}

func hasExchange(hit apigem.MetaboliteHit) bool {
	_, found := utils.First(hit.Reactions, func(r apigem.MetaboliteReactionHit) bool {
		return r.IsExchange
	})
	return found
}
