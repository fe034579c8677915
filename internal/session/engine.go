// internal/session/engine.go
//
// Session engine.
// Responsibilities:
//   - Create sessions bound to a score table fingerprint.
//   - Validate and record observed (guess, outcome) pairs.
//   - Restore the remaining candidate set by replaying constraints.
//
// Notes:
//   - Guesses must be in the table's vocabulary; outcomes use W/M/C letters.
//   - A session recorded against one table cannot be replayed against another.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// ErrStaleTable is returned when a session is replayed against a different table.
var ErrStaleTable = errors.New("session: recorded against a different score table")

// New constructs an empty session for the table with the given fingerprint.
func New(fingerprint string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          randomID(),
		Fingerprint: fingerprint,
		Constraints: []candidates.Constraint{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Observe validates guess and outcome against tbl and appends the constraint.
//
// Validation rules:
//   - tbl must be the table the session was created for.
//   - guess must be 5 letters a–z and in the vocabulary.
//   - outcome must be 5 of W/M/C.
func (s *Session) Observe(tbl *table.Table, guess, outcome string) (candidates.Constraint, error) {
	if tbl.Fingerprint() != s.Fingerprint {
		return candidates.Constraint{}, ErrStaleTable
	}
	g, err := codec.WordToID(strings.ToLower(strings.TrimSpace(guess)))
	if err != nil {
		return candidates.Constraint{}, err
	}
	if !tbl.Contains(g) {
		return candidates.Constraint{}, fmt.Errorf("%w: %s", table.ErrUnknownWord, g)
	}
	o, err := codec.OutcomeToID(strings.TrimSpace(outcome))
	if err != nil {
		return candidates.Constraint{}, err
	}
	c := candidates.Constraint{Guess: g, Outcome: o}
	s.Constraints = append(s.Constraints, c)
	s.UpdatedAt = time.Now().UTC()
	return c, nil
}

// Candidates replays the constraints over tbl's full vocabulary.
func (s *Session) Candidates(tbl *table.Table) (candidates.Set, error) {
	if tbl.Fingerprint() != s.Fingerprint {
		return nil, ErrStaleTable
	}
	return candidates.Apply(tbl, tbl.Vocabulary(), s.Constraints...)
}

// Solved reports whether the last observation was all-correct.
func (s *Session) Solved() bool {
	n := len(s.Constraints)
	return n > 0 && s.Constraints[n-1].Outcome == codec.AllCorrect
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
