package gem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoModel is returned from model-dependent operations before a model
// has been loaded.
var ErrNoModel = errors.New("no model loaded")

// DefaultSearchPaths are tried, in order, when loading without an
// explicit path.
var DefaultSearchPaths = []string{
	"models/yeast-GEM.json",
	"models/yeast8.json",
	"../models/yeast-GEM.json",
}

// View is a read snapshot handed to Read callbacks. The model must not
// be mutated through it.
type View struct {
	Model    *Model
	Solution *Solution
	Path     string
}

// Registry owns the loaded model, the original-bounds snapshot and the
// last FBA solution.
//
// echo serves requests concurrently, and optimization mutates reaction
// bounds in place (reset + constraint application). All access goes
// through the RWMutex: Read for handlers, Optimize exclusively.
type Registry struct {
	mu             sync.RWMutex
	model          *Model
	path           string
	originalBounds map[string][2]float64
	solution       *Solution
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads the model at path, or searches DefaultSearchPaths when
// path is empty. A previously held solution is discarded.
func (r *Registry) Load(path string) (string, error) {
	if path == "" {
		found, ok := searchDefault()
		if !ok {
			return "", os.ErrNotExist
		}
		path = found
	}

	model, err := Load(path)
	if err != nil {
		return "", err
	}

	bounds := make(map[string][2]float64, len(model.Reactions))
	for _, rxn := range model.Reactions {
		bounds[rxn.ID] = [2]float64{rxn.LowerBound, rxn.UpperBound}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.model = model
	r.path = path
	r.originalBounds = bounds
	r.solution = nil

	return path, nil
}

func searchDefault() (string, bool) {
	for _, p := range DefaultSearchPaths {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.model != nil
}

// Read runs fn under the read lock. Returns ErrNoModel when nothing is
// loaded yet.
func (r *Registry) Read(fn func(View) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.model == nil {
		return ErrNoModel
	}
	return fn(View{Model: r.model, Solution: r.solution, Path: r.path})
}

// Info describes the loaded model, or (zero, false).
func (r *Registry) Info() (id string, reactions, metabolites, genes int, path string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.model == nil {
		return "", 0, 0, 0, "", false
	}
	return r.model.ID,
		len(r.model.Reactions),
		len(r.model.Metabolites),
		len(r.model.Genes),
		filepath.Base(r.path),
		true
}

// Optimize resets every reaction to its original bounds, lets apply
// place constraint overrides, and runs solve. The whole sequence holds
// the write lock: concurrent optimizations with different constraint
// sets must not interleave.
//
// apply may be nil. The solution is retained for flux queries even when
// the solver reports a non-optimal status.
func (r *Registry) Optimize(
	ctx context.Context,
	apply func(*Model) error,
	solve func(context.Context, *Model) (*Solution, error),
) (*Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.model == nil {
		return nil, ErrNoModel
	}

	for _, rxn := range r.model.Reactions {
		if bounds, ok := r.originalBounds[rxn.ID]; ok {
			rxn.LowerBound, rxn.UpperBound = bounds[0], bounds[1]
		}
	}

	if apply != nil {
		if err := apply(r.model); err != nil {
			return nil, err
		}
	}

	solution, err := solve(ctx, r.model)
	if err != nil {
		return nil, err
	}
	r.solution = solution
	return solution, nil
}
