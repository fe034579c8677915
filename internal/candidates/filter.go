// internal/candidates/filter.go
//
// Candidate narrowing: keep only the solutions consistent with observed
// (guess, outcome) pairs.
//
// A Set is never mutated in place. Filter and Apply always return a fresh
// slice; callers that need rollback keep earlier snapshots.

package candidates

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Scorer returns the outcome of guess against solution.
type Scorer interface {
	Lookup(solution, guess codec.WordID) (codec.OutcomeID, error)
}

// Indexer positions words within a vocabulary.
type Indexer interface {
	IndexOf(w codec.WordID) (int, bool)
	Len() int
}

// Set is a collection of candidate words. Order is preserved by every
// operation in this package.
type Set []codec.WordID

// Constraint is one observed guess and its outcome.
type Constraint struct {
	Guess   codec.WordID
	Outcome codec.OutcomeID
}

// String renders the constraint as guess:OUTCOME.
func (c Constraint) String() string {
	return c.Guess.String() + ":" + c.Outcome.String()
}

// ParseConstraint reads the guess:OUTCOME form produced by String.
func ParseConstraint(s string) (Constraint, error) {
	if len(s) != 2*codec.WordLen+1 || s[codec.WordLen] != ':' {
		return Constraint{}, fmt.Errorf("%w: constraint %q must look like guess:OUTCOME", codec.ErrInvalidInput, s)
	}
	g, err := codec.WordToID(s[:codec.WordLen])
	if err != nil {
		return Constraint{}, err
	}
	o, err := codec.OutcomeToID(s[codec.WordLen+1:])
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{Guess: g, Outcome: o}, nil
}

// Of builds a Set from ids, keeping the first occurrence of each word.
// Every id must be in the vocabulary.
func Of(ix Indexer, ids []codec.WordID) (Set, error) {
	seen := bitset.New(uint(ix.Len()))
	out := make(Set, 0, len(ids))
	for _, id := range ids {
		i, ok := ix.IndexOf(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", table.ErrUnknownWord, id)
		}
		if seen.Test(uint(i)) {
			continue
		}
		seen.Set(uint(i))
		out = append(out, id)
	}
	return out, nil
}

// OfWords parses a comma-separated word list such as "tares,could" and builds
// a Set from it with Of. Blank entries are ignored.
func OfWords(ix Indexer, list string) (Set, error) {
	var ids []codec.WordID
	for _, w := range strings.Split(list, ",") {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		id, err := codec.WordToID(w)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return Of(ix, ids)
}

// Filter returns the members c of s with Lookup(c, guess) == observed.
// An empty result is not an error.
func Filter(sc Scorer, s Set, guess codec.WordID, observed codec.OutcomeID) (Set, error) {
	out := make(Set, 0, len(s))
	for _, c := range s {
		o, err := sc.Lookup(c, guess)
		if err != nil {
			return nil, err
		}
		if o == observed {
			out = append(out, c)
		}
	}
	return out, nil
}

// Apply folds Filter over constraints in order.
func Apply(sc Scorer, s Set, constraints ...Constraint) (Set, error) {
	out := append(Set(nil), s...)
	for _, c := range constraints {
		next, err := Filter(sc, out, c.Guess, c.Outcome)
		if err != nil {
			return nil, fmt.Errorf("apply %s: %w", c, err)
		}
		out = next
	}
	return out, nil
}

// Contains reports whether w is in s.
func (s Set) Contains(w codec.WordID) bool {
	for _, c := range s {
		if c == w {
			return true
		}
	}
	return false
}

// Words renders the set as strings.
func (s Set) Words() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.String()
	}
	return out
}
