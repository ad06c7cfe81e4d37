package config

import (
	"fmt"

	"github.com/statementcore/corebank/internal/fragment"
)

// Registry stores registered configs and selects the ones applicable
// to a document (spec.md §4.4). Treated as read-only after
// registration for the lifetime of the process (spec.md §5).
type Registry struct {
	order   []string
	configs map[string]Config
}

// NewRegistry returns an empty config registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]Config)}
}

// Register validates and stores cfg, preserving registration order.
// Registering the same key twice replaces the prior entry in place
// (order is not disturbed).
func (r *Registry) Register(cfg Config, formats FormatChecker) error {
	if err := cfg.Validate(formats); err != nil {
		return err
	}
	if _, exists := r.configs[cfg.Key]; !exists {
		r.order = append(r.order, cfg.Key)
	}
	r.configs[cfg.Key] = cfg
	return nil
}

// Keys returns registered config keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.configs[key]
	return ok
}

// Get returns the config for key.
func (r *Registry) Get(key string) (Config, bool) {
	c, ok := r.configs[key]
	return c, ok
}

// Applicable returns, preserving registration order, every config
// whose full account_terms set is present in the normalized fragment
// stream — substring match over the concatenation of each fragment's
// text and its same-line neighborhood; a term may span fragments.
func (r *Registry) Applicable(doc fragment.Stream) []Config {
	haystack := neighborhoodText(doc)

	var out []Config
	for _, key := range r.order {
		cfg := r.configs[key]
		if allTermsPresent(haystack, cfg.AccountTerms) {
			out = append(out, cfg)
		}
	}
	return out
}

// neighborhoodText concatenates, for each fragment, its own text with
// its same-line neighbors' text, so a term split across two fragments
// on one line (e.g. "Account" / "Number") is still matchable as a
// substring of at least one neighborhood window.
func neighborhoodText(doc fragment.Stream) []string {
	windows := make([]string, 0, len(doc))
	for i := range doc {
		window := doc[i].Text
		for j := i + 1; j < len(doc) && fragment.SameLine(doc[i], doc[j], 2.0); j++ {
			window += " " + doc[j].Text
		}
		windows = append(windows, window)
	}
	return windows
}

func allTermsPresent(windows []string, terms []string) bool {
	for _, term := range terms {
		if !anyWindowContains(windows, term) {
			return false
		}
	}
	return true
}

func anyWindowContains(windows []string, term string) bool {
	for _, w := range windows {
		if containsFold(w, term) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return fragment.Fragment{Text: s}.Contains(substr)
}

// ErrNoApplicableConfig is returned by a driver when Applicable yields
// nothing for a document.
var ErrNoApplicableConfig = fmt.Errorf("no applicable config")
