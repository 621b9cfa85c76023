// Package painpoints flags known complaint phrases in negative reviews.
package painpoints

import (
	"sort"
	"strings"

	"review-lab/domain"

	goahocorasick "github.com/anknown/ahocorasick"
)

// catalog is the single list of pain-point phrases. Output order follows it.
var catalog = []string{
	"bad quality",
	"waste of money",
	"poor quality",
	"defective product",
	"not original",
	"worst product",
	"fake",
	"damage",
}

// Catalog returns a copy of the phrase catalog in output order.
func Catalog() []string {
	return append([]string(nil), catalog...)
}

// Annotator reports which catalog phrases occur in a negative review.
type Annotator struct {
	matcher *goahocorasick.Machine
	phrases []string
}

// NewAnnotator builds an Aho-Corasick automaton over the lowercased phrases.
// Empty and duplicate phrases are skipped.
func NewAnnotator(phrases []string) (*Annotator, error) {
	seen := make(map[string]struct{}, len(phrases))
	kept := make([]string, 0, len(phrases))
	patterns := make([][]rune, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(p)
		if _, dup := seen[p]; dup || p == "" {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
		patterns = append(patterns, []rune(p))
	}

	a := &Annotator{phrases: kept}
	if len(patterns) == 0 {
		return a, nil
	}
	// The double-array trie under the automaton is built from sorted keys.
	sort.Slice(patterns, func(i, j int) bool {
		return string(patterns[i]) < string(patterns[j])
	})
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	a.matcher = m
	return a, nil
}

// NewDefaultAnnotator is NewAnnotator over Catalog.
func NewDefaultAnnotator() (*Annotator, error) {
	return NewAnnotator(catalog)
}

// Annotate lists the catalog phrases contained in the lowercased raw text.
// It returns an empty list unless sentiment is Negative.
func (a *Annotator) Annotate(raw string, sentiment domain.Sentiment) []string {
	matches := []string{}
	if sentiment != domain.Negative || a.matcher == nil || raw == "" {
		return matches
	}

	found := make(map[string]struct{})
	for _, term := range a.matcher.MultiPatternSearch([]rune(strings.ToLower(raw)), false) {
		found[string(term.Word)] = struct{}{}
	}
	for _, p := range a.phrases {
		if _, ok := found[p]; ok {
			matches = append(matches, p)
		}
	}
	return matches
}

// Phrases returns the deduplicated phrases the annotator matches, in output order.
func (a *Annotator) Phrases() []string {
	return append([]string(nil), a.phrases...)
}
