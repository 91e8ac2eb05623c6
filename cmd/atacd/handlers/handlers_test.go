package handlers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// toyModel is a reduced COBRA JSON export: glucose uptake feeding a
// lumped glycolysis, plus an oxygen exchange so preset discovery has
// something to find.
const toyModel = `{
	"id": "toy",
	"compartments": {"c": "cytoplasm", "e": "extracellular"},
	"metabolites": [
		{
			"id": "glc_e", "name": "D-glucose", "compartment": "e",
			"annotation": {"kegg.compound": "C00031"}
		},
		{
			"id": "o2_e", "name": "oxygen", "compartment": "e",
			"annotation": {"kegg.compound": "C00007"}
		},
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
			"id": "EX_o2", "name": "oxygen exchange",
			"metabolites": {"o2_e": -1},
			"lower_bound": -1000, "upper_bound": 1000,
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
			"objective_coefficient": 1,
			"annotation": {"ec-code": "2.7.1.2", "kegg.reaction": ["R00299"]}
		},
		{
			"id": "EX_pyr", "name": "pyruvate exchange",
			"metabolites": {"pyr_c": -1},
			"lower_bound": 0, "upper_bound": 1000
		}
	],
	"genes": [{"id": "YHR094C", "name": "HXT1"}]
}`

// writeToyModel stores the toy model as a file and returns its path.
func writeToyModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toy.json")
	if err := os.WriteFile(path, []byte(toyModel), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// loadedRegistry returns a registry holding the toy model.
func loadedRegistry(t *testing.T) *gem.Registry {
	t.Helper()
	reg := gem.NewRegistry()
	if _, err := reg.Load(writeToyModel(t)); err != nil {
		t.Fatal(err)
	}
	return reg
}

// emptyThermoStore returns a store over an empty directory.
func emptyThermoStore(t *testing.T) *thermo.Store {
	t.Helper()
	store := thermo.NewStore(t.TempDir())
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	return store
}
