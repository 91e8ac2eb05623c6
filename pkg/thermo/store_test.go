package thermo_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
	"github.com/atacflux/atacflux/pkg/thermo"
	"github.com/atacflux/atacflux/pkg/utils/try"
)

const reactionsJSON = `{
	"r_0001": {
		"name": "(R,R)-butanediol dehydrogenase",
		"reaction": {
			"equation": "(R,R)-2,3-butanediol [c] + NAD [c] ⇌ (R)-acetoin [c] + H+ [c] + NADH [c]",
			"stoichiometry": {"s_0002": -1, "s_1198": -1, "s_0064": 1},
			"metabolites": {
				"s_0002": {"name": "(R,R)-2,3-butanediol", "coef": -1, "in_cache": true, "found_in_equilibrator": true, "queried_as": "kegg:C03044"}
			}
		},
		"thermodynamics": {"dG_prime": 22.4, "uncertainty": 1.2, "formula_queried": "kegg:C03044 + kegg:C00003 = kegg:C00810 + kegg:C00004", "method": "standard"},
		"errors": [],
		"references": {"kegg_reaction": "R02946", "ec": ["1.1.1.4"]}
	},
	"r_0226": {
		"name": "ATP synthase",
		"reaction": {
			"equation": "ADP [m] + phosphate [m] + 3 H+ [e] ⇌ ATP [m] + 2 H+ [m] + H2O [m]",
			"stoichiometry": {"s_0394": -1, "s_1322": -1, "s_0434": 1},
			"metabolites": {}
		},
		"thermodynamics": {
			"dG_prime": null, "uncertainty": null, "formula_queried": null,
			"method": "redox_carrier", "couples_used": ["NAD/NADH"],
			"note": "Used RedoxCarrier with literature reduction potentials for metalloprotein redox couples"
		},
		"errors": [
			{
				"type": "proton_pump_error",
				"message": "unbalanced reaction",
				"inner_formula": "kegg:C00008 + kegg:C00009 = kegg:C00002 + kegg:C00001",
				"outer_formula": "3 kegg:C00080 ="
			}
		],
		"references": {"kegg_reaction": null, "ec": "7.1.2.2"}
	}
}`

const compoundsJSON = `{
	"ATP": {
		"name": "ATP",
		"queried_as": "kegg:C00002",
		"query_source": "kegg",
		"matched_inchi_key": null,
		"identifiers": {
			"kegg": "C00002", "chebi": "CHEBI:30616", "metanetx": "MNXM3", "bigg": "atp",
			"yeast_gem": ["s_0434", "s_0435"]
		}
	}
}`

func testStore(t *testing.T) *thermo.Store {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		thermo.ReactionsFile: reactionsJSON,
		thermo.CompoundsFile: compoundsJSON,
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

func TestStore(t *testing.T) {
	store := testStore(t)

	t.Run("reaction lookup", func(t *testing.T) {
		r, ok := store.Reaction("r_0001")
		if !ok {
			t.Fatal("r_0001 not found")
		}
		if r.Thermodynamics.DGPrime == nil || *r.Thermodynamics.DGPrime != 22.4 {
			t.Errorf("dG_prime: got %v", r.Thermodynamics.DGPrime)
		}
		if got := []string(r.References.KeggReaction); len(got) != 1 || got[0] != "R02946" {
			t.Errorf("kegg_reaction should accept a bare string: got %v", got)
		}
	})

	t.Run("missing reaction", func(t *testing.T) {
		if _, ok := store.Reaction("r_9999"); ok {
			t.Error("r_9999 should not be found")
		}
	})

	t.Run("compound by cache key", func(t *testing.T) {
		c, ok := store.Compound("ATP")
		if !ok {
			t.Fatal("ATP not found")
		}
		if c.Identifiers.Kegg == nil || *c.Identifiers.Kegg != "C00002" {
			t.Errorf("kegg id: got %v", c.Identifiers.Kegg)
		}
	})

	t.Run("compound by metabolite id", func(t *testing.T) {
		for _, metID := range []string{"s_0434", "s_0435"} {
			c, ok := store.CompoundOfMetabolite(metID)
			if !ok {
				t.Errorf("%s should resolve to a compound", metID)
				continue
			}
			if c.Name != "ATP" {
				t.Errorf("%s: got %s, want ATP", metID, c.Name)
			}
		}
		if _, ok := store.CompoundOfMetabolite("s_9999"); ok {
			t.Error("s_9999 should not resolve")
		}
	})

	t.Run("status", func(t *testing.T) {
		status := store.Status()
		if !status.Available || !status.Loaded {
			t.Errorf("caches should be available and loaded: %+v", status)
		}
		if status.ReactionsCount != 2 || status.CompoundsCount != 1 {
			t.Errorf("counts: %+v", status)
		}
	})

	t.Run("proton pump errors keep their half-reaction formulas", func(t *testing.T) {
		r, ok := store.Reaction("r_0226")
		if !ok {
			t.Fatal("r_0226 not found")
		}
		if len(r.Errors) != 1 {
			t.Fatalf("errors: got %+v", r.Errors)
		}
		cerr := r.Errors[0]
		if cerr.Type != "proton_pump_error" {
			t.Errorf("error type: got %s", cerr.Type)
		}
		if cerr.InnerFormula != "kegg:C00008 + kegg:C00009 = kegg:C00002 + kegg:C00001" {
			t.Errorf("inner_formula: got %s", cerr.InnerFormula)
		}
		if cerr.OuterFormula != "3 kegg:C00080 =" {
			t.Errorf("outer_formula: got %s", cerr.OuterFormula)
		}
		if r.Thermodynamics.Note == "" {
			t.Error("note should survive the load")
		}

		served := try.To(json.Marshal(r)).OrFatal(t)
		var back apithermo.Reaction
		if err := json.Unmarshal(served, &back); err != nil {
			t.Fatal(err)
		}
		if back.Errors[0].InnerFormula != cerr.InnerFormula || back.Errors[0].OuterFormula != cerr.OuterFormula {
			t.Errorf("formulas dropped on the wire: %+v", back.Errors[0])
		}
		if back.Thermodynamics.Note != r.Thermodynamics.Note {
			t.Errorf("note dropped on the wire: %+v", back.Thermodynamics)
		}
	})
}

func TestStore_MissingFiles(t *testing.T) {
	store := thermo.NewStore(t.TempDir())
	if err := store.Reload(); err != nil {
		t.Fatalf("missing cache files are not an error: %v", err)
	}

	status := store.Status()
	if status.Available || status.Loaded {
		t.Errorf("nothing should be available: %+v", status)
	}
}

func TestStore_ReloadReplaces(t *testing.T) {
	store := testStore(t)

	// drop the reactions file content and reload: the old entries must
	// not survive.
	path := store.Files()[0]
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Reaction("r_0001"); ok {
		t.Error("stale entry survived reload")
	}
}
