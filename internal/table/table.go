// internal/table/table.go
//
// Precomputed score table: the outcome of every (solution, guess) pair over a
// fixed vocabulary.
//
// File layout (little-endian):
//
//	offset 0      uint32       N, vocabulary size
//	offset 4      uint32[N]    word ids; defines row and column order
//	offset 4+4N   uint8[N*N]   row-major outcomes; (i, j) = guess word[j] vs solution word[i]
//
// A Table is immutable once built and safe for concurrent readers.

package table

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/codec"
)

// MaxWords bounds N so that N*N indexes fit in 32 bits.
const MaxWords = 1<<16 - 1

var (
	// ErrCorruptData is returned when table bytes are truncated or inconsistent.
	ErrCorruptData = errors.New("table: corrupt data")

	// ErrUnknownWord is returned for lookups outside the loaded vocabulary.
	ErrUnknownWord = errors.New("table: unknown word")
)

// Table maps (solution, guess) pairs to outcomes.
type Table struct {
	words       []codec.WordID
	index       map[codec.WordID]int
	scores      []byte // len(words)^2 outcome ids, row = solution
	fingerprint [32]byte
}

// newTable indexes words; it fails on duplicate or out-of-range ids.
func newTable(words []codec.WordID, scores []byte) (*Table, error) {
	t := &Table{
		words:  words,
		index:  make(map[codec.WordID]int, len(words)),
		scores: scores,
	}
	for i, w := range words {
		if !w.Valid() {
			return nil, fmt.Errorf("%w: word id %d out of range", ErrCorruptData, w)
		}
		if _, dup := t.index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %s", ErrCorruptData, w)
		}
		t.index[w] = i
	}
	return t, nil
}

// Lookup returns the outcome of playing guess when solution is the answer.
func (t *Table) Lookup(solution, guess codec.WordID) (codec.OutcomeID, error) {
	si, ok := t.index[solution]
	if !ok {
		return 0, fmt.Errorf("%w: solution %s", ErrUnknownWord, solution)
	}
	gi, ok := t.index[guess]
	if !ok {
		return 0, fmt.Errorf("%w: guess %s", ErrUnknownWord, guess)
	}
	return codec.OutcomeID(t.scores[si*len(t.words)+gi]), nil
}

// Contains reports whether w is in the vocabulary.
func (t *Table) Contains(w codec.WordID) bool {
	_, ok := t.index[w]
	return ok
}

// IndexOf returns w's row/column position.
func (t *Table) IndexOf(w codec.WordID) (int, bool) {
	i, ok := t.index[w]
	return i, ok
}

// Vocabulary returns a copy of the known words in table order.
func (t *Table) Vocabulary() []codec.WordID {
	out := make([]codec.WordID, len(t.words))
	copy(out, t.words)
	return out
}

// Len is the vocabulary size.
func (t *Table) Len() int { return len(t.words) }

// Fingerprint is the hex BLAKE2b-256 digest of the table's encoding.
func (t *Table) Fingerprint() string { return hex.EncodeToString(t.fingerprint[:]) }
