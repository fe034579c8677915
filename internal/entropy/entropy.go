// internal/entropy/entropy.go
//
// Expected information of a guess: the Shannon entropy, in bits, of the
// outcome distribution the guess induces over a candidate set.
//
//	H = -Σ p·log2(p),  p = k/n per non-empty outcome bucket
//	  = (n·log2(n) - Σ k·log2(k)) / n
//
// The second form is what is computed. It is the full-distribution entropy,
// not the two-bucket "this outcome vs. the rest" split.

package entropy

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// ErrEmptySet is returned for an empty candidate set, where entropy is undefined.
var ErrEmptySet = errors.New("entropy: empty candidate set")

// Distribution counts candidates per outcome of guess. An outcome id outside
// [0, NumOutcomes) from sc is reported as table.ErrCorruptData.
func Distribution(sc candidates.Scorer, guess codec.WordID, s candidates.Set) ([codec.NumOutcomes]int, error) {
	var buckets [codec.NumOutcomes]int
	for _, c := range s {
		o, err := sc.Lookup(c, guess)
		if err != nil {
			return buckets, err
		}
		if !o.Valid() {
			return buckets, fmt.Errorf("%w: outcome %d for %s vs %s", table.ErrCorruptData, o, guess, c)
		}
		buckets[o]++
	}
	return buckets, nil
}

// ExpectedInformation returns the entropy of guess over s. It is 0 for a
// singleton set and log2(len(s)) when every candidate lands in its own bucket.
func ExpectedInformation(sc candidates.Scorer, guess codec.WordID, s candidates.Set) (float64, error) {
	if len(s) == 0 {
		return 0, ErrEmptySet
	}
	buckets, err := Distribution(sc, guess, s)
	if err != nil {
		return 0, err
	}
	return FromCounts(buckets[:]), nil
}

// FromCounts is the entropy of a distribution given as bucket counts.
// Zero buckets are ignored; an all-zero input yields 0.
func FromCounts[T constraints.Integer](counts []T) float64 {
	var n T
	var sum float64
	for _, k := range counts {
		n += k
		sum += xlog2x(k)
	}
	if n == 0 {
		return 0
	}
	return (xlog2x(n) - sum) / float64(n)
}

// xlog2x is k·log2(k) with 0·log2(0) = 0.
func xlog2x[T constraints.Integer](k T) float64 {
	if k <= 0 {
		return 0
	}
	f := float64(k)
	return f * math.Log2(f)
}
