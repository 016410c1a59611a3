package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/rshade/lca-carbon/internal/carbon"
)

const (
	maxSuggestions      = 3
	maxSuggestDistance  = 3
	defaultSuggestLimit = 1
)

// Defaults are the fractions used by the named scenarios.
type Defaults struct {
	// SleepReduction is the sleep fraction of the sleep scenarios.
	SleepReduction float64
	// PartialRenewable is the renewable share of the mixed scenario.
	PartialRenewable float64
}

// ReferenceDefaults returns the reference 30% sleep reduction and 30%
// partial renewable share.
func ReferenceDefaults() Defaults {
	return Defaults{
		SleepReduction:   carbon.DefaultSleepModeReduction,
		PartialRenewable: carbon.DefaultPartialRenewable,
	}
}

// Registry holds the scenarios of one run in registration order: the five
// built-in scenarios first, then custom ones.
type Registry struct {
	params []Params
	byName map[string]int
}

// NewRegistry returns a registry with the built-in scenarios derived from
// defaults plus the given custom scenarios. Every scenario uses the given
// manufacturing allocation policy, except custom ones which keep their own.
//
// Custom fractions are not validated here; the model rejects them when the
// scenario is built so that one bad scenario does not prevent the others.
func NewRegistry(defaults Defaults, spread bool, custom ...Params) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}

	for _, k := range BuiltinKinds {
		p := builtin(k, defaults)
		p.ManufacturingSpread = spread
		if err := r.add(p); err != nil {
			return nil, err
		}
	}

	for _, p := range custom {
		p.Kind = KindCustom
		if err := r.add(p); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func builtin(k Kind, d Defaults) Params {
	p := Params{Kind: k, Name: k.String()}
	switch k {
	case KindRenewable:
		p.RenewableShare = 1.0
	case KindMixed:
		p.RenewableShare = d.PartialRenewable
	case KindSleep:
		p.SleepFraction = d.SleepReduction
	case KindSleepRenewable:
		p.SleepFraction = d.SleepReduction
		p.RenewableShare = 1.0
	}
	return p
}

func (r *Registry) add(p Params) error {
	if p.Name == "" {
		return ErrUnnamedScenario
	}
	key := normalize(p.Name)
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateScenario, p.Name)
	}
	r.byName[key] = len(r.params)
	r.params = append(r.params, p)
	return nil
}

// All returns every scenario in registration order.
func (r *Registry) All() []Params {
	out := make([]Params, len(r.params))
	copy(out, r.params)
	return out
}

// Names returns the scenario names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.params))
	for i, p := range r.params {
		names[i] = p.Name
	}
	return names
}

// Get returns the parameters of a built-in scenario.
func (r *Registry) Get(k Kind) (Params, bool) {
	if k == KindCustom {
		return Params{}, false
	}
	idx, ok := r.byName[k.String()]
	if !ok {
		return Params{}, false
	}
	return r.params[idx], true
}

// Baseline returns the baseline scenario.
func (r *Registry) Baseline() Params {
	p, _ := r.Get(KindBaseline)
	return p
}

// Lookup returns the scenario with the given name (case-insensitive). An
// unknown name fails with ErrUnknownScenario; the error lists the closest
// registered names when there are any.
func (r *Registry) Lookup(name string) (Params, error) {
	if idx, ok := r.byName[normalize(name)]; ok {
		return r.params[idx], nil
	}

	suggestions := r.suggest(name)
	if len(suggestions) == 0 {
		return Params{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownScenario, name, strings.Join(r.Names(), ", "))
	}
	return Params{}, fmt.Errorf("%w: %q (did you mean %s?)", ErrUnknownScenario, name, quoteJoin(suggestions))
}

// LookupAll resolves every name, failing on the first unknown one. Names
// that resolve to an already listed scenario are dropped, so every scenario
// appears once, at its first position.
func (r *Registry) LookupAll(names []string) ([]Params, error) {
	out := make([]Params, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		p, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		key := normalize(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out, nil
}

func (r *Registry) suggest(name string) []string {
	names := r.Names()
	query := normalize(name)
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	suggestions := make([]string, 0, maxSuggestions)
	for _, rank := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	if len(suggestions) > 0 {
		return suggestions
	}

	// Typos are not subsequences; fall back to edit distance.
	type candidate struct {
		name     string
		distance int
	}
	var candidates []candidate
	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(query, normalize(n)); d <= maxSuggestDistance {
			candidates = append(candidates, candidate{n, d})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	for i := 0; i < len(candidates) && i < defaultSuggestLimit; i++ {
		suggestions = append(suggestions, candidates[i].name)
	}
	return suggestions
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, " or ")
}
