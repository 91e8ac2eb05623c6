package gem

import (
	"fmt"
	"strings"
)

const (
	LocationCompartment  = "compartment"
	LocationCompartments = "compartments"
)

// EquationInfo is the human-readable rendering of a reaction.
type EquationInfo struct {
	// Equation with metabolite names; compartment tags appear only when
	// the reaction spans compartments.
	Equation string

	// EquationRaw is the id-based form.
	EquationRaw string

	// LocationType is "compartment" for single-compartment reactions,
	// "compartments" otherwise (transport, exchange, multi-compartment).
	LocationType string

	// Location names where the reaction happens, e.g. "cytoplasm",
	// "extracellular ⇌ cytoplasm", "cytoplasm ⇌ environment".
	Location string

	IsExchange bool
}

// ReactionInfo renders rxn for humans.
//
// With smartBreak, equations longer than 60 characters break at the
// arrow, and then at "+" if either side still exceeds 80 characters.
func (m *Model) ReactionInfo(rxn *Reaction, smartBreak bool) EquationInfo {
	comps := m.CompartmentsOf(rxn)
	singleCompartment := len(comps) == 1
	isExchange := rxn.IsExchange()

	// transport moves one species between compartments: every
	// participant shares a name but not a compartment.
	names := map[string]struct{}{}
	for _, p := range rxn.Participants {
		if met, ok := m.Metabolite(p.Metabolite); ok {
			names[met.Name] = struct{}{}
		}
	}
	isTransport := len(names) == 1 && len(comps) > 1

	substrates, products := []string{}, []string{}
	for _, p := range rxn.Participants {
		met, ok := m.Metabolite(p.Metabolite)
		if !ok {
			continue
		}

		label := met.Name
		if !singleCompartment && !isExchange {
			label = fmt.Sprintf("%s[%s]", met.Name, met.Compartment)
		}

		if abs := absOf(p.Coefficient); abs != 1 {
			if abs == float64(int64(abs)) {
				label = fmt.Sprintf("%d %s", int64(abs), label)
			} else {
				label = fmt.Sprintf("%.2g %s", abs, label)
			}
		}

		if p.Coefficient < 0 {
			substrates = append(substrates, label)
		} else {
			products = append(products, label)
		}
	}

	left, right := "∅", "∅"
	if len(substrates) != 0 {
		left = strings.Join(substrates, " + ")
	}
	if len(products) != 0 {
		right = strings.Join(products, " + ")
	}
	arrow := "→"
	if rxn.Reversible() {
		arrow = "⇌"
	}
	equation := fmt.Sprintf("%s %s %s", left, arrow, right)

	if smartBreak && len(equation) > 60 {
		equation = strings.ReplaceAll(equation, fmt.Sprintf(" %s ", arrow), fmt.Sprintf(" %s\n", arrow))
		for _, part := range strings.Split(equation, "\n") {
			if len(part) > 80 {
				equation = strings.ReplaceAll(equation, " + ", " +\n")
				break
			}
		}
	}

	info := EquationInfo{
		Equation:    equation,
		EquationRaw: m.RawEquation(rxn),
		IsExchange:  isExchange,
	}

	switch {
	case isExchange:
		info.LocationType = LocationCompartments
		info.Location = fmt.Sprintf("%s ⇌ environment", m.CompartmentName(comps[0]))
	case isTransport:
		info.LocationType = LocationCompartments
		named := make([]string, len(comps))
		for i, c := range comps {
			named[i] = m.CompartmentName(c)
		}
		info.Location = strings.Join(named, " ⇌ ")
	case singleCompartment:
		info.LocationType = LocationCompartment
		info.Location = m.CompartmentName(comps[0])
	default:
		info.LocationType = LocationCompartments
		named := make([]string, len(comps))
		for i, c := range comps {
			named[i] = m.CompartmentName(c)
		}
		info.Location = strings.Join(named, ", ")
	}

	return info
}

// DescribeFor explains what rxn does from the viewpoint of metabolite met:
// an internal conversion, a transport to/from other compartments, or an
// exchange with the environment.
func (m *Model) DescribeFor(rxn *Reaction, met *Metabolite) string {
	if rxn.IsExchange() {
		return "transport to/from environment"
	}

	otherComps := []string{}
	sawOwn := false
	seen := map[string]struct{}{}
	for _, p := range rxn.Participants {
		if p.Metabolite == met.ID {
			continue
		}
		other, ok := m.Metabolite(p.Metabolite)
		if !ok {
			continue
		}
		if other.Compartment == met.Compartment {
			sawOwn = true
			continue
		}
		if _, dup := seen[other.Compartment]; dup {
			continue
		}
		seen[other.Compartment] = struct{}{}
		otherComps = append(otherComps, m.CompartmentName(other.Compartment))
	}

	switch {
	case sawOwn:
		return "internal reaction"
	case len(otherComps) != 0:
		return fmt.Sprintf("transport to/from %s", strings.Join(otherComps, ", "))
	default:
		return "reaction"
	}
}
