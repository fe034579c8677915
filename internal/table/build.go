package table

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Build scores every pair of list against each other. Words are deduplicated
// and sorted by id, so the same list always yields the same table and
// fingerprint. Rows are scored on up to workers goroutines; onRow, if set, is
// called once per finished row and must be safe for concurrent use.
func Build(list []string, workers int, onRow func()) (*Table, error) {
	ids := make([]codec.WordID, 0, len(list))
	for _, w := range list {
		id, err := codec.WordToID(w)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if len(ids) > MaxWords {
		return nil, fmt.Errorf("table: %d words exceeds %d", len(ids), MaxWords)
	}

	n := len(ids)
	text := make([]string, n)
	for i, id := range ids {
		text[i] = id.String()
	}
	scores := make([]byte, n*n)

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i := range n {
		g.Go(func() error {
			row := scores[i*n : (i+1)*n]
			for j := range n {
				row[j] = byte(words.Score(text[i], text[j]))
			}
			if onRow != nil {
				onRow()
			}
			return nil
		})
	}
	_ = g.Wait()

	t, err := newTable(ids, scores)
	if err != nil {
		return nil, err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	if _, err := t.WriteTo(h); err != nil {
		return nil, err
	}
	copy(t.fingerprint[:], h.Sum(nil))
	log.Debug().Int("words", n).Str("fingerprint", t.Fingerprint()).Msg("built score table")
	return t, nil
}
