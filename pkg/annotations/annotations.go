// Package annotations resolves database identifiers (KEGG, ChEBI,
// MetaNetX, BiGG) and names to model metabolites and their exchange
// reactions, with a cascading fallback across the thermo compound
// cache and the model's own annotations.
package annotations

import (
	"sort"
	"strings"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/thermo"
	"github.com/atacflux/atacflux/pkg/utils"
)

// MatchType controls how metabolite names are compared when no
// identifier namespace matches the query.
type MatchType string

const (
	MatchAny   MatchType = "any"   // substring, either direction
	MatchExact MatchType = "exact" // whole-name equality
)

// annotation namespaces of the model, as emitted by SBML exports.
const (
	nsKegg     = "kegg.compound"
	nsChebi    = "chebi"
	nsMetanetx = "metanetx.chemical"
	nsBigg     = "bigg.metabolite"
)

func normalizeChebi(s string) string {
	s = strings.ReplaceAll(s, "CHEBI:", "")
	return strings.ReplaceAll(s, "chebi:", "")
}

// FindMetabolite scans the model annotations for query. Identifier
// namespaces are tried first (KEGG, ChEBI with or without prefix,
// MetaNetX, BiGG), then metabolite names. A metabolite present in
// several compartments matches several times.
func FindMetabolite(m *gem.Model, query string, match MatchType) []*gem.Metabolite {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryChebi := normalizeChebi(query)

	matches := []*gem.Metabolite{}
	for _, met := range m.Metabolites {
		if matchesAnnotation(met.Annotation, query, queryLower, queryChebi) {
			matches = append(matches, met)
			continue
		}

		nameLower := strings.ToLower(met.Name)
		switch match {
		case MatchExact:
			if queryLower == nameLower {
				matches = append(matches, met)
			}
		default:
			if strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower) {
				matches = append(matches, met)
			}
		}
	}
	return matches
}

func matchesAnnotation(ann gem.Annotation, query, queryLower, queryChebi string) bool {
	for _, kegg := range ann[nsKegg] {
		if strings.EqualFold(kegg, query) {
			return true
		}
	}
	for _, chebi := range ann[nsChebi] {
		if normalizeChebi(chebi) == queryChebi {
			return true
		}
	}
	for _, mnx := range ann[nsMetanetx] {
		if strings.EqualFold(mnx, query) {
			return true
		}
	}
	for _, bigg := range ann[nsBigg] {
		if strings.ToLower(bigg) == queryLower {
			return true
		}
	}
	return false
}

// FindMetaboliteFromThermoCache resolves query through the compound
// cache's identifier mapping, which covers more namespaces than the
// model annotations, then maps the yeast_gem ids back into the model.
func FindMetaboliteFromThermoCache(m *gem.Model, store *thermo.Store, query string) []*gem.Metabolite {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryChebi := normalizeChebi(query)

	metIDs := map[string]struct{}{}
	store.EachCompound(func(_ string, c apithermo.Compound) bool {
		if compoundMatches(c, query, queryLower, queryChebi) {
			for _, metID := range c.Identifiers.YeastGem {
				metIDs[metID] = struct{}{}
			}
		}
		return true
	})

	matches := []*gem.Metabolite{}
	sortedIDs := utils.Sorted(utils.KeysOf(metIDs), func(a, b string) bool { return a < b })
	for _, metID := range sortedIDs {
		if met, ok := m.Metabolite(metID); ok {
			matches = append(matches, met)
		}
	}
	return matches
}

func compoundMatches(c apithermo.Compound, query, queryLower, queryChebi string) bool {
	ids := c.Identifiers
	if ids.Kegg != nil && strings.EqualFold(*ids.Kegg, query) {
		return true
	}
	if ids.Chebi != nil && normalizeChebi(*ids.Chebi) == queryChebi {
		return true
	}
	if ids.Metanetx != nil && strings.EqualFold(*ids.Metanetx, query) {
		return true
	}
	if ids.Bigg != nil && strings.ToLower(*ids.Bigg) == queryLower {
		return true
	}
	return c.Name != "" && strings.ToLower(c.Name) == queryLower
}

// FindExchangeReactions returns the exchange reactions touching met.
func FindExchangeReactions(m *gem.Model, met *gem.Metabolite) []*gem.Reaction {
	return utils.Filter(m.ReactionsOf(met.ID), (*gem.Reaction).IsExchange)
}

// FindExchangeByQuery resolves query to metabolites (thermo cache
// first, model annotations as fallback) and collects their exchange
// reactions.
func FindExchangeByQuery(m *gem.Model, store *thermo.Store, query string) apigem.AnnotationSearchResult {
	metabolites := FindMetaboliteFromThermoCache(m, store, query)
	if len(metabolites) == 0 {
		metabolites = FindMetabolite(m, query, MatchAny)
	}

	exchanges := []*gem.Reaction{}
	seen := map[string]struct{}{}
	for _, met := range metabolites {
		for _, rxn := range FindExchangeReactions(m, met) {
			if _, ok := seen[rxn.ID]; ok {
				continue
			}
			seen[rxn.ID] = struct{}{}
			exchanges = append(exchanges, rxn)
		}
	}
	sort.Slice(exchanges, func(i, j int) bool { return exchanges[i].ID < exchanges[j].ID })

	return apigem.AnnotationSearchResult{
		Query: query,
		Metabolites: utils.Map(metabolites, func(met *gem.Metabolite) apigem.MetaboliteSummary {
			return apigem.MetaboliteSummary{
				ID:          met.ID,
				Name:        met.Name,
				Compartment: met.Compartment,
			}
		}),
		Exchanges: utils.Map(exchanges, func(rxn *gem.Reaction) apigem.ExchangeSummary {
			return apigem.ExchangeSummary{
				ID:     rxn.ID,
				Name:   rxn.Name,
				Bounds: apigem.Bounds{rxn.LowerBound, rxn.UpperBound},
			}
		}),
	}
}
