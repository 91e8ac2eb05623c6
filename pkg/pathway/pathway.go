// Package pathway composes API responses out of the model, the last
// FBA solution and the thermo caches: reaction listing and detail,
// metabolite producing/consuming context and subsystem views.
package pathway

import (
	"math"
	"strings"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/colors"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/thermo"
	"github.com/atacflux/atacflux/pkg/utils"
)

// ListQuery narrows the reaction listing.
type ListQuery struct {
	// Query matches against reaction id, name and gene rule,
	// case-insensitively. Empty matches everything.
	Query string

	Limit  int
	Offset int

	// NonzeroFlux keeps only reactions carrying flux in the last
	// solution (beyond gem.ZeroFluxTolerance).
	NonzeroFlux bool
}

// ListReactions filters and paginates the model's reactions. Total is
// the match count before pagination.
func ListReactions(v gem.View, q ListQuery) apigem.ReactionPage {
	query := strings.ToLower(q.Query)

	matched := []apigem.ReactionSummary{}
	for _, rxn := range v.Model.Reactions {
		if query != "" {
			searchable := strings.ToLower(rxn.ID + " " + rxn.Name + " " + rxn.GeneRule)
			if !strings.Contains(searchable, query) {
				continue
			}
		}

		var flux *float64
		if v.Solution != nil {
			f, _ := v.Solution.Flux(rxn.ID)
			f = roundFlux(f)
			flux = &f
		}
		if q.NonzeroFlux {
			if flux == nil || math.Abs(*flux) <= gem.ZeroFluxTolerance {
				continue
			}
		}

		info := v.Model.ReactionInfo(rxn, false)
		matched = append(matched, apigem.ReactionSummary{
			ID:           rxn.ID,
			Name:         rxn.Name,
			Equation:     v.Model.RawEquation(rxn),
			Bounds:       apigem.Bounds{rxn.LowerBound, rxn.UpperBound},
			Genes:        rxn.GeneRule,
			Subsystem:    rxn.Subsystem,
			Flux:         flux,
			LocationType: info.LocationType,
			Location:     info.Location,
			Compartments: v.Model.CompartmentsOf(rxn),
		})
	}

	page := apigem.ReactionPage{
		Reactions: []apigem.ReactionSummary{},
		Total:     len(matched),
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.Offset < len(matched) {
		end := q.Offset + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Reactions = matched[q.Offset:end]
	}
	return page
}

// ReactionContext assembles the full detail view of one reaction:
// equation info, participants with compound thermo, reaction thermo,
// EC/KEGG references and flux.
func ReactionContext(v gem.View, store *thermo.Store, rxnID string) (apigem.ReactionDetail, bool) {
	rxn, ok := v.Model.Reaction(rxnID)
	if !ok {
		return apigem.ReactionDetail{}, false
	}

	info := v.Model.ReactionInfo(rxn, true)
	detail := apigem.ReactionDetail{
		ID:           rxn.ID,
		Name:         rxn.Name,
		EquationRaw:  info.EquationRaw,
		Equation:     info.Equation,
		LocationType: info.LocationType,
		Location:     info.Location,
		LowerBound:   rxn.LowerBound,
		UpperBound:   rxn.UpperBound,
		Genes:        rxn.GeneRule,
		Subsystem:    rxn.Subsystem,
		Reversible:   rxn.Reversible(),
		Substrates:   []apigem.MetaboliteRef{},
		Products:     []apigem.MetaboliteRef{},
		EC:           rxn.Annotation["ec-code"],
		Kegg:         rxn.Annotation["kegg.reaction"],
	}

	for _, p := range rxn.Participants {
		met, ok := v.Model.Metabolite(p.Metabolite)
		if !ok {
			continue
		}
		ref := apigem.MetaboliteRef{
			ID:              met.ID,
			Name:            met.Name,
			Coefficient:     p.Coefficient,
			Compartment:     met.Compartment,
			CompartmentName: v.Model.CompartmentName(met.Compartment),
		}
		if c, ok := store.CompoundOfMetabolite(met.ID); ok {
			ref.Thermo = &c
		}
		if p.Coefficient < 0 {
			detail.Substrates = append(detail.Substrates, ref)
		} else {
			detail.Products = append(detail.Products, ref)
		}
	}

	if rt, ok := store.Reaction(rxn.ID); ok {
		detail.Thermo = &rt
	}
	if f, ok := v.Solution.Flux(rxn.ID); ok {
		f = roundFlux(f)
		detail.Flux = &f
	}
	return detail, true
}

// MetaboliteContext assembles the pathway view around one metabolite:
// which reactions produce it and which consume it, with thermo and flux.
func MetaboliteContext(v gem.View, store *thermo.Store, metID string) (apigem.MetaboliteDetail, bool) {
	met, ok := v.Model.Metabolite(metID)
	if !ok {
		return apigem.MetaboliteDetail{}, false
	}

	detail := apigem.MetaboliteDetail{
		ID:              met.ID,
		Name:            met.Name,
		Compartment:     met.Compartment,
		CompartmentName: v.Model.CompartmentName(met.Compartment),
		Formula:         met.Formula,
		Producing:       []apigem.PathwayReaction{},
		Consuming:       []apigem.PathwayReaction{},
	}
	if c, ok := store.CompoundOfMetabolite(met.ID); ok {
		detail.Thermo = &c
	}

	for _, rxn := range v.Model.ReactionsOf(met.ID) {
		coef, _ := rxn.Coefficient(met.ID)
		pr := pathwayReaction(v, store, rxn)
		if coef < 0 {
			detail.Consuming = append(detail.Consuming, pr)
		} else {
			detail.Producing = append(detail.Producing, pr)
		}
	}
	return detail, true
}

// SubsystemReactions renders every reaction of one subsystem. The
// boolean reports whether the subsystem exists in the model at all.
func SubsystemReactions(v gem.View, store *thermo.Store, name string) (apigem.SubsystemDetail, bool) {
	detail := apigem.SubsystemDetail{
		Subsystem: name,
		Reactions: []apigem.PathwayReaction{},
	}

	found := false
	for _, rxn := range v.Model.Reactions {
		subsystem := rxn.Subsystem
		if subsystem == "" {
			subsystem = UncategorizedSubsystem
		}
		if subsystem != name {
			continue
		}
		found = true
		detail.Reactions = append(detail.Reactions, pathwayReaction(v, store, rxn))
	}
	return detail, found
}

// UncategorizedSubsystem groups reactions without a subsystem label.
const UncategorizedSubsystem = "Uncategorized"

// Subsystems indexes the model's subsystems with their reaction ids,
// sorted by name.
func Subsystems(m *gem.Model) apigem.SubsystemList {
	byName := map[string][]string{}
	for _, rxn := range m.Reactions {
		name := rxn.Subsystem
		if name == "" {
			name = UncategorizedSubsystem
		}
		byName[name] = append(byName[name], rxn.ID)
	}

	names := utils.Sorted(utils.KeysOf(byName), func(a, b string) bool { return a < b })
	return apigem.SubsystemList{
		Subsystems: utils.Map(names, func(name string) apigem.Subsystem {
			return apigem.Subsystem{
				Name:      name,
				Count:     len(byName[name]),
				Reactions: byName[name],
			}
		}),
	}
}

// Compartments lists the model's compartments with metabolite counts,
// most populated first, each with a stable badge color.
func Compartments(m *gem.Model) apigem.CompartmentList {
	counts := map[string]int{}
	for _, met := range m.Metabolites {
		counts[met.Compartment]++
	}

	compartments := []apigem.Compartment{}
	for id, name := range m.Compartments {
		compartments = append(compartments, apigem.Compartment{
			ID:              id,
			Name:            name,
			MetaboliteCount: counts[id],
		})
	}
	compartments = utils.Sorted(compartments, func(a, b apigem.Compartment) bool {
		if a.MetaboliteCount != b.MetaboliteCount {
			return a.MetaboliteCount > b.MetaboliteCount
		}
		return a.ID < b.ID
	})

	assigned := colors.Assign(
		utils.Map(compartments, func(c apigem.Compartment) string { return c.ID }),
		colors.DefaultSaturation, colors.DefaultLightness,
	)
	for i := range compartments {
		compartments[i].Color = assigned[compartments[i].ID]
	}
	return apigem.CompartmentList{Compartments: compartments}
}

func pathwayReaction(v gem.View, store *thermo.Store, rxn *gem.Reaction) apigem.PathwayReaction {
	info := v.Model.ReactionInfo(rxn, true)
	pr := apigem.PathwayReaction{
		ID:           rxn.ID,
		Name:         rxn.Name,
		EquationRaw:  info.EquationRaw,
		Equation:     info.Equation,
		LocationType: info.LocationType,
		Location:     info.Location,
		Genes:        rxn.GeneRule,
		Subsystem:    rxn.Subsystem,
	}

	if rt, ok := store.Reaction(rxn.ID); ok {
		pr.DGPrime = rt.Thermodynamics.DGPrime
		pr.Uncertainty = rt.Thermodynamics.Uncertainty
		pr.FormulaQueried = rt.Thermodynamics.FormulaQueried
	}
	if f, ok := v.Solution.Flux(rxn.ID); ok {
		f = roundFlux(f)
		pr.Flux = &f
	}
	return pr
}

// fluxes are reported to 6 decimal places; finer digits are solver noise.
func roundFlux(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
