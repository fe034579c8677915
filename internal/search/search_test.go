package search

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/entropy"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// bucketScorer splits solutions into buckets[guess] outcome classes by id.
type bucketScorer map[codec.WordID]int

func (b bucketScorer) Lookup(solution, guess codec.WordID) (codec.OutcomeID, error) {
	n, ok := b[guess]
	if !ok {
		return 0, table.ErrUnknownWord
	}
	return codec.OutcomeID(int(solution) % n), nil
}

func embedded(t *testing.T) *table.Table {
	t.Helper()
	list, err := words.Load("")
	require.NoError(t, err)
	tbl, err := table.Build(list.Words, 4, nil)
	require.NoError(t, err)
	return tbl
}

// sequential is the reference scan: strict greater-than over a running max.
func sequential(t *testing.T, sc candidates.Scorer, solutions, guesses candidates.Set) Evaluation {
	t.Helper()
	var best Evaluation
	for i, g := range guesses {
		bits, err := entropy.ExpectedInformation(sc, g, solutions)
		require.NoError(t, err)
		if i == 0 || bits > best.Bits {
			best = Evaluation{Guess: g, Bits: bits}
		}
	}
	return best
}

func TestBestGuessDeterministicAcrossWorkers(t *testing.T) {
	tbl := embedded(t)
	all := candidates.Set(tbl.Vocabulary())
	narrowed, err := candidates.Filter(tbl, all, codec.MustWordToID("tares"), codec.MustOutcomeToID("WWWWW"))
	require.NoError(t, err)
	require.NotEmpty(t, narrowed)

	for _, solutions := range []candidates.Set{all, narrowed} {
		want := sequential(t, tbl, solutions, all)
		for _, k := range []int{1, 2, 3, 4, 7, 16, len(all) + 3} {
			got, err := BestGuess(tbl, solutions, all, Options{Workers: k})
			require.NoError(t, err)
			assert.Equal(t, want, got, "workers=%d", k)
		}
	}
}

func TestBestGuessTiesKeepEarliest(t *testing.T) {
	g := []codec.WordID{10, 11, 12, 13, 14}
	sc := bucketScorer{10: 1, 11: 2, 12: 4, 13: 4, 14: 2}
	solutions := candidates.Set{0, 1, 2, 3}

	for k := 1; k <= 6; k++ {
		got, err := BestGuess(sc, solutions, g, Options{Workers: k})
		require.NoError(t, err)
		assert.Equal(t, codec.WordID(12), got.Guess, "workers=%d", k)
		assert.InDelta(t, 2.0, got.Bits, 1e-12)
	}
}

func TestBestGuessAllZero(t *testing.T) {
	// Every guess is worth 0 bits; the first guess is still returned.
	sc := bucketScorer{20: 1, 21: 1, 22: 1}
	for k := 1; k <= 4; k++ {
		got, err := BestGuess(sc, candidates.Set{5, 6}, candidates.Set{21, 20, 22}, Options{Workers: k})
		require.NoError(t, err)
		assert.Equal(t, Evaluation{Guess: 21, Bits: 0}, got, "workers=%d", k)
	}
}

// The synthetic vocabulary where only tares scores WWWWW against could.
func TestBestGuessEndToEnd(t *testing.T) {
	vocab := []string{"could", "bilge", "bully", "bylaw", "abide", "amiss", "tares"}
	base, err := table.Build(vocab, 1, nil)
	require.NoError(t, err)

	// Re-encode with amiss given a non-blank row against could.
	var buf bytes.Buffer
	_, err = base.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.Bytes()
	n := base.Len()
	amiss, _ := base.IndexOf(codec.MustWordToID("amiss"))
	could, _ := base.IndexOf(codec.MustWordToID("could"))
	raw[4+4*n+amiss*n+could] = byte(codec.MustOutcomeToID("WWWWM"))
	tbl, err := table.Load(bytes.NewReader(raw))
	require.NoError(t, err)

	remaining, err := candidates.Filter(tbl, candidates.Set(tbl.Vocabulary()), codec.MustWordToID("could"), codec.MustOutcomeToID("WWWWW"))
	require.NoError(t, err)
	assert.Equal(t, candidates.Set{codec.MustWordToID("tares")}, remaining)

	for _, k := range []int{1, 3} {
		got, err := BestGuess(tbl, remaining, remaining, Options{Workers: k})
		require.NoError(t, err)
		assert.Equal(t, Evaluation{Guess: codec.MustWordToID("tares"), Bits: 0}, got)
	}
}

func TestBestGuessErrors(t *testing.T) {
	sc := bucketScorer{1: 2}

	_, err := BestGuess(sc, candidates.Set{1, 2}, nil, Options{Workers: 2})
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = BestGuess(sc, nil, candidates.Set{1}, Options{Workers: 2})
	assert.ErrorIs(t, err, entropy.ErrEmptySet)

	_, err = BestGuess(sc, candidates.Set{1, 2}, candidates.Set{1, 99}, Options{Workers: 2})
	assert.ErrorIs(t, err, table.ErrUnknownWord)
}

func TestBestGuessReportsProgress(t *testing.T) {
	tbl := embedded(t)
	all := candidates.Set(tbl.Vocabulary())

	var mu sync.Mutex
	var seen []Progress
	rep := ReporterFunc(func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, p)
	})

	want, err := BestGuess(tbl, all, all, Options{Workers: 1})
	require.NoError(t, err)
	got, err := BestGuess(tbl, all, all, Options{Workers: 3, Interval: time.Millisecond, Reporter: rep})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	last := seen[len(seen)-1]
	assert.Equal(t, len(all), last.Done)
	assert.Equal(t, len(all), last.Total)
	assert.Equal(t, 1.0, last.Fraction())
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i].Done, seen[i-1].Done)
	}
}

func TestSnapshot(t *testing.T) {
	p := snapshot(25, 100, 10*time.Second)
	assert.Equal(t, 0.25, p.Fraction())
	assert.Equal(t, 40*time.Second, p.Estimated)
	assert.Equal(t, 30*time.Second, p.Remaining)

	zero := snapshot(0, 100, time.Second)
	assert.Zero(t, zero.Estimated)
	assert.Zero(t, zero.Remaining)
}

func TestReporters(t *testing.T) {
	var logs bytes.Buffer
	LogReporter(zerolog.New(&logs)).Report(snapshot(1, 2, time.Second))
	assert.Contains(t, logs.String(), `"done":"50.0%"`)
	assert.Contains(t, logs.String(), `"message":"search progress"`)

	var out bytes.Buffer
	bar := NewBarReporter(&out, 4, "best guess")
	bar.Report(snapshot(2, 4, time.Second))
	bar.Report(snapshot(4, 4, 2*time.Second))
	assert.Contains(t, out.String(), "best guess")
}

func TestBestGuessCanceled(t *testing.T) {
	tbl := embedded(t)
	all := candidates.Set(tbl.Vocabulary())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BestGuess(tbl, all, all, Options{Workers: 2, Context: ctx})
	assert.ErrorIs(t, err, context.Canceled)
}
