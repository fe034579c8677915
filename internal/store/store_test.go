package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func sample() *session.Session {
	s := session.New("abc123")
	s.Constraints = append(s.Constraints,
		candidates.Constraint{Guess: codec.MustWordToID("could"), Outcome: codec.MustOutcomeToID("WWWWW")},
		candidates.Constraint{Guess: codec.MustWordToID("tares"), Outcome: codec.MustOutcomeToID("MWWWC")},
	)
	return s
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sql":    NewSQLStore(openMemDB(t)),
	}
}

func TestStoreSaveGet(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sample()
			require.NoError(t, st.Save(ctx, s))

			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, s.Fingerprint, got.Fingerprint)
			assert.Equal(t, s.Constraints, got.Constraints)
			assert.WithinDuration(t, s.CreatedAt, got.CreatedAt, time.Millisecond)
		})
	}
}

func TestStoreReplacesObservations(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := sample()
			require.NoError(t, st.Save(ctx, s))

			s.Constraints = s.Constraints[:1]
			require.NoError(t, st.Save(ctx, s))

			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Len(t, got.Constraints, 1)
			assert.Equal(t, "could:WWWWW", got.Constraints[0].String())
		})
	}
}

func TestStoreEmptySession(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := session.New("fp")
			require.NoError(t, st.Save(ctx, s))
			got, err := st.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Empty(t, got.Constraints)
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	s := sample()
	require.NoError(t, st.Save(ctx, s))

	s.Constraints[0].Outcome = codec.AllCorrect
	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, codec.MustOutcomeToID("WWWWW"), got.Constraints[0].Outcome)

	got.Constraints = nil
	again, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, again.Constraints, 2)
}

func TestMigrateIdempotent(t *testing.T) {
	db := openMemDB(t)
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}
