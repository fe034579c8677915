// internal/session/types.go
//
// Core type definitions for solver sessions.
// Defines:
//   - Session: the evidence gathered while solving one puzzle.

package session

import (
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
)

// Session holds the constraints observed in one puzzle. The candidate set is
// never stored; it is rebuilt from Constraints against the table identified
// by Fingerprint.
type Session struct {
	ID          string                  // Unique session identifier (random hex string).
	Fingerprint string                  // Score table fingerprint the constraints refer to.
	Constraints []candidates.Constraint // Observed (guess, outcome) pairs, in play order.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Constraints = append([]candidates.Constraint(nil), s.Constraints...)
	return &c
}
