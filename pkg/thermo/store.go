// Package thermo serves the precomputed eQuilibrator thermodynamics
// caches. The caches are plain JSON files generated offline; this
// package only loads and indexes them.
package thermo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
)

const (
	ReactionsFile = "reactions_thermo.json"
	CompoundsFile = "compounds_thermo.json"
)

// Store holds the thermo caches in memory. Reload replaces the whole
// content atomically, so readers never observe a half-loaded cache.
type Store struct {
	mu        sync.RWMutex
	dataDir   string
	reactions map[string]apithermo.Reaction
	compounds map[string]apithermo.Compound

	// metabolite id (yeast_gem annotation) -> compound cache key
	compoundOfMet map[string]string
}

// NewStore makes an empty Store over dataDir. Call Reload to populate it.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir:       dataDir,
		reactions:     map[string]apithermo.Reaction{},
		compounds:     map[string]apithermo.Compound{},
		compoundOfMet: map[string]string{},
	}
}

// Files returns the cache file paths this Store reads, whether they
// exist or not. Handy for change watching.
func (s *Store) Files() []string {
	return []string{
		filepath.Join(s.dataDir, ReactionsFile),
		filepath.Join(s.dataDir, CompoundsFile),
	}
}

// Reload re-reads the cache files. Missing files are not errors: the
// caches are optional and the store just stays (or becomes) empty for
// the missing part.
func (s *Store) Reload() error {
	reactions := map[string]apithermo.Reaction{}
	if err := readJSONFile(filepath.Join(s.dataDir, ReactionsFile), &reactions); err != nil {
		return err
	}

	compounds := map[string]apithermo.Compound{}
	if err := readJSONFile(filepath.Join(s.dataDir, CompoundsFile), &compounds); err != nil {
		return err
	}

	compoundOfMet := map[string]string{}
	for key, c := range compounds {
		for _, metID := range c.Identifiers.YeastGem {
			compoundOfMet[metID] = key
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions = reactions
	s.compounds = compounds
	s.compoundOfMet = compoundOfMet
	return nil
}

func readJSONFile(path string, dest any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(content, dest); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Reaction looks the reaction thermo entry up by reaction id.
func (s *Store) Reaction(rxnID string) (apithermo.Reaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reactions[rxnID]
	return r, ok
}

// Compound looks an entry up by its cache key (metabolite base name).
func (s *Store) Compound(key string) (apithermo.Compound, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.compounds[key]
	return c, ok
}

// CompoundOfMetabolite resolves a model metabolite id (s_0001 style)
// to its compound entry via the yeast_gem identifier lists.
func (s *Store) CompoundOfMetabolite(metID string) (apithermo.Compound, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.compoundOfMet[metID]
	if !ok {
		return apithermo.Compound{}, false
	}
	c, ok := s.compounds[key]
	return c, ok
}

// Reactions returns a copy of the whole reaction cache.
func (s *Store) Reactions() map[string]apithermo.Reaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]apithermo.Reaction, len(s.reactions))
	for k, v := range s.reactions {
		out[k] = v
	}
	return out
}

// EachCompound calls fn for every compound entry until fn returns false.
func (s *Store) EachCompound(fn func(key string, c apithermo.Compound) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.compounds {
		if !fn(k, v) {
			return
		}
	}
}

// Status reports cache availability. Available is whether the cache
// files exist on disk, Loaded whether anything is in memory.
func (s *Store) Status() apithermo.Status {
	available := false
	for _, path := range s.Files() {
		if _, err := os.Stat(path); err == nil {
			available = true
			break
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return apithermo.Status{
		Available:      available,
		Loaded:         len(s.reactions) > 0 || len(s.compounds) > 0,
		ReactionsCount: len(s.reactions),
		CompoundsCount: len(s.compounds),
	}
}
