package pathway_test

import (
	"os"
	"path/filepath"
	"testing"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/pathway"
	"github.com/atacflux/atacflux/pkg/thermo"
	"github.com/atacflux/atacflux/pkg/utils"
	"github.com/atacflux/atacflux/pkg/utils/cmp"
	"github.com/atacflux/atacflux/pkg/utils/try"
)

func testModel(t *testing.T) *gem.Model {
	t.Helper()
	return try.To(gem.Unmarshal([]byte(`{
		"id": "toy",
		"compartments": {"c": "cytoplasm", "e": "extracellular"},
		"metabolites": [
			{"id": "glc_e", "name": "D-glucose", "compartment": "e"},
			{"id": "glc_c", "name": "D-glucose", "compartment": "c"},
			{"id": "pyr_c", "name": "pyruvate", "compartment": "c"}
		],
		"reactions": [
			{
				"id": "EX_glc", "name": "D-glucose exchange",
				"metabolites": {"glc_e": -1},
				"lower_bound": -10, "upper_bound": 1000,
				"subsystem": "Exchange"
			},
			{
				"id": "GLCt", "name": "D-glucose transport",
				"metabolites": {"glc_e": -1, "glc_c": 1},
				"lower_bound": -1000, "upper_bound": 1000,
				"subsystem": "Transport",
				"gene_reaction_rule": "YHR094C"
			},
			{
				"id": "GLYC", "name": "glycolysis (lumped)",
				"metabolites": {"glc_c": -1, "pyr_c": 2},
				"lower_bound": 0, "upper_bound": 1000,
				"subsystem": "Glycolysis",
				"gene_reaction_rule": "YCL040W and YKL060C",
				"annotation": {"ec-code": "2.7.1.2", "kegg.reaction": ["R00299"]}
			},
			{
				"id": "EX_pyr", "name": "pyruvate exchange",
				"metabolites": {"pyr_c": -1},
				"lower_bound": 0, "upper_bound": 1000
			}
		],
		"genes": [{"id": "YHR094C", "name": "HXT1"}]
	}`))).OrFatal(t)
}

func testStore(t *testing.T) *thermo.Store {
	t.Helper()
	dir := t.TempDir()
	reactions := `{
		"GLYC": {
			"name": "glycolysis (lumped)",
			"reaction": {"equation": "", "stoichiometry": {}, "metabolites": {}},
			"thermodynamics": {"dG_prime": -81.5, "uncertainty": 3.2, "formula_queried": "kegg:C00031 = 2 kegg:C00022", "method": "standard"},
			"errors": [],
			"references": {"kegg_reaction": "R00299", "ec": "2.7.1.2"}
		}
	}`
	compounds := `{
		"D-glucose": {
			"name": "D-glucose",
			"queried_as": "kegg:C00031",
			"query_source": "kegg",
			"matched_inchi_key": null,
			"identifiers": {"kegg": "C00031", "chebi": "CHEBI:17634", "metanetx": "MNXM41", "bigg": "glc__D", "yeast_gem": ["glc_e", "glc_c"]}
		}
	}`
	for name, content := range map[string]string{
		thermo.ReactionsFile: reactions,
		thermo.CompoundsFile: compounds,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := thermo.NewStore(dir)
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	return store
}

func solvedView(t *testing.T) gem.View {
	return gem.View{
		Model: testModel(t),
		Solution: &gem.Solution{
			Status:    gem.StatusOptimal,
			Objective: 20,
			Fluxes: map[string]float64{
				"EX_glc": -10, "GLCt": 10, "GLYC": 10.0000004, "EX_pyr": 20,
			},
		},
	}
}

func TestListReactions(t *testing.T) {
	view := solvedView(t)

	t.Run("no filter pages everything", func(t *testing.T) {
		page := pathway.ListReactions(view, pathway.ListQuery{Limit: 50})
		if page.Total != 4 || len(page.Reactions) != 4 {
			t.Fatalf("total %d, page %d", page.Total, len(page.Reactions))
		}

		glyc, ok := utils.First(page.Reactions, func(r apigem.ReactionSummary) bool { return r.ID == "GLYC" })
		if !ok {
			t.Fatal("GLYC not listed")
		}
		if glyc.Flux == nil || *glyc.Flux != 10 {
			t.Errorf("flux should be rounded to 6 places: %v", glyc.Flux)
		}
		if glyc.Genes != "YCL040W and YKL060C" || glyc.Subsystem != "Glycolysis" {
			t.Errorf("summary: %+v", glyc)
		}
		if glyc.LocationType != gem.LocationCompartment || glyc.Location != "cytoplasm" {
			t.Errorf("location: %s %s", glyc.LocationType, glyc.Location)
		}
		if !cmp.SliceEq(glyc.Compartments, []string{"c"}) {
			t.Errorf("compartments: %v", glyc.Compartments)
		}
	})

	t.Run("query matches id, name and genes", func(t *testing.T) {
		for query, want := range map[string][]string{
			"ex_":     {"EX_glc", "EX_pyr"},
			"glucose": {"EX_glc", "GLCt"},
			"yhr094c": {"GLCt"},
		} {
			page := pathway.ListReactions(view, pathway.ListQuery{Query: query, Limit: 50})
			got := utils.Map(page.Reactions, func(r apigem.ReactionSummary) string { return r.ID })
			if !cmp.SliceContentEq(got, want) {
				t.Errorf("%q: got %v, want %v", query, got, want)
			}
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page := pathway.ListReactions(view, pathway.ListQuery{Limit: 2, Offset: 3})
		if page.Total != 4 {
			t.Errorf("total: %d", page.Total)
		}
		if len(page.Reactions) != 1 {
			t.Errorf("page size: %d", len(page.Reactions))
		}

		beyond := pathway.ListReactions(view, pathway.ListQuery{Limit: 2, Offset: 100})
		if len(beyond.Reactions) != 0 || beyond.Total != 4 {
			t.Errorf("offset beyond end: %+v", beyond)
		}
	})

	t.Run("nonzero flux filter", func(t *testing.T) {
		view := view
		view.Solution = &gem.Solution{
			Status: gem.StatusOptimal,
			Fluxes: map[string]float64{"EX_glc": -10, "GLCt": 1e-9},
		}
		page := pathway.ListReactions(view, pathway.ListQuery{Limit: 50, NonzeroFlux: true})
		got := utils.Map(page.Reactions, func(r apigem.ReactionSummary) string { return r.ID })
		if !cmp.SliceEq(got, []string{"EX_glc"}) {
			t.Errorf("got %v", got)
		}
	})

	t.Run("nonzero flux filter without a solution drops everything", func(t *testing.T) {
		view := view
		view.Solution = nil
		page := pathway.ListReactions(view, pathway.ListQuery{Limit: 50, NonzeroFlux: true})
		if page.Total != 0 {
			t.Errorf("total: %d", page.Total)
		}
	})
}

func TestReactionContext(t *testing.T) {
	view := solvedView(t)
	store := testStore(t)

	t.Run("full detail", func(t *testing.T) {
		detail, ok := pathway.ReactionContext(view, store, "GLYC")
		if !ok {
			t.Fatal("GLYC not found")
		}

		if detail.Name != "glycolysis (lumped)" || detail.Subsystem != "Glycolysis" {
			t.Errorf("detail: %+v", detail)
		}
		if detail.Reversible {
			t.Error("GLYC is irreversible")
		}
		if len(detail.Substrates) != 1 || detail.Substrates[0].ID != "glc_c" {
			t.Errorf("substrates: %+v", detail.Substrates)
		}
		if len(detail.Products) != 1 || detail.Products[0].ID != "pyr_c" {
			t.Errorf("products: %+v", detail.Products)
		}
		if detail.Substrates[0].Thermo == nil || detail.Substrates[0].Thermo.Name != "D-glucose" {
			t.Errorf("substrate thermo: %+v", detail.Substrates[0].Thermo)
		}
		if detail.Products[0].Thermo != nil {
			t.Error("pyruvate has no compound cache entry")
		}
		if detail.Thermo == nil || *detail.Thermo.Thermodynamics.DGPrime != -81.5 {
			t.Errorf("reaction thermo: %+v", detail.Thermo)
		}
		if !cmp.SliceEq(detail.EC, []string{"2.7.1.2"}) || !cmp.SliceEq(detail.Kegg, []string{"R00299"}) {
			t.Errorf("references: ec %v kegg %v", detail.EC, detail.Kegg)
		}
		if detail.Flux == nil || *detail.Flux != 10 {
			t.Errorf("flux: %v", detail.Flux)
		}
	})

	t.Run("without solution there is no flux", func(t *testing.T) {
		view := view
		view.Solution = nil
		detail, ok := pathway.ReactionContext(view, store, "GLYC")
		if !ok {
			t.Fatal("GLYC not found")
		}
		if detail.Flux != nil {
			t.Errorf("flux: %v", detail.Flux)
		}
	})

	t.Run("unknown reaction", func(t *testing.T) {
		if _, ok := pathway.ReactionContext(view, store, "nope"); ok {
			t.Error("found a reaction that does not exist")
		}
	})
}

func TestMetaboliteContext(t *testing.T) {
	view := solvedView(t)
	store := testStore(t)

	detail, ok := pathway.MetaboliteContext(view, store, "glc_c")
	if !ok {
		t.Fatal("glc_c not found")
	}

	if detail.CompartmentName != "cytoplasm" {
		t.Errorf("compartment name: %s", detail.CompartmentName)
	}
	if detail.Thermo == nil || detail.Thermo.Name != "D-glucose" {
		t.Errorf("thermo: %+v", detail.Thermo)
	}

	producing := utils.Map(detail.Producing, func(r apigem.PathwayReaction) string { return r.ID })
	consuming := utils.Map(detail.Consuming, func(r apigem.PathwayReaction) string { return r.ID })
	if !cmp.SliceContentEq(producing, []string{"GLCt"}) {
		t.Errorf("producing: %v", producing)
	}
	if !cmp.SliceContentEq(consuming, []string{"GLYC"}) {
		t.Errorf("consuming: %v", consuming)
	}

	glyc := detail.Consuming[0]
	if glyc.DGPrime == nil || *glyc.DGPrime != -81.5 {
		t.Errorf("flattened dG_prime: %v", glyc.DGPrime)
	}
	if glyc.Flux == nil || *glyc.Flux != 10 {
		t.Errorf("flux: %v", glyc.Flux)
	}

	if _, ok := pathway.MetaboliteContext(view, store, "nope"); ok {
		t.Error("found a metabolite that does not exist")
	}
}

func TestSubsystems(t *testing.T) {
	m := testModel(t)

	list := pathway.Subsystems(m)
	want := []apigem.Subsystem{
		{Name: "Exchange", Count: 1, Reactions: []string{"EX_glc"}},
		{Name: "Glycolysis", Count: 1, Reactions: []string{"GLYC"}},
		{Name: "Transport", Count: 1, Reactions: []string{"GLCt"}},
		{Name: pathway.UncategorizedSubsystem, Count: 1, Reactions: []string{"EX_pyr"}},
	}
	if !cmp.SliceEqWith(list.Subsystems, want, apigem.Subsystem.Equal) {
		t.Errorf("got %+v, want %+v", list.Subsystems, want)
	}
}

func TestSubsystemReactions(t *testing.T) {
	view := solvedView(t)
	store := testStore(t)

	detail, ok := pathway.SubsystemReactions(view, store, "Glycolysis")
	if !ok {
		t.Fatal("Glycolysis not found")
	}
	if len(detail.Reactions) != 1 || detail.Reactions[0].ID != "GLYC" {
		t.Errorf("reactions: %+v", detail.Reactions)
	}

	if _, ok := pathway.SubsystemReactions(view, store, "Nonexistent pathway"); ok {
		t.Error("found a subsystem that does not exist")
	}
}

func TestCompartments(t *testing.T) {
	m := testModel(t)

	list := pathway.Compartments(m)
	if len(list.Compartments) != 2 {
		t.Fatalf("got %d compartments", len(list.Compartments))
	}

	// cytoplasm holds 2 metabolites, extracellular 1: most populated first.
	if list.Compartments[0].ID != "c" || list.Compartments[0].MetaboliteCount != 2 {
		t.Errorf("first: %+v", list.Compartments[0])
	}
	if list.Compartments[1].ID != "e" || list.Compartments[1].MetaboliteCount != 1 {
		t.Errorf("second: %+v", list.Compartments[1])
	}
	for _, c := range list.Compartments {
		if c.Color == "" {
			t.Errorf("%s has no color", c.ID)
		}
	}
}
