package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

// SQLStore keeps sessions in the sessions/observations tables created by Migrate.
type SQLStore struct{ db *sql.DB }

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Save upserts the session row and rewrites its observations in one transaction.
func (s *SQLStore) Save(ctx context.Context, sess *session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO sessions (id, fingerprint, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET fingerprint=excluded.fingerprint, updated_at=excluded.updated_at`,
		sess.ID, sess.Fingerprint, sess.CreatedAt.UTC().Format(time.RFC3339Nano), sess.UpdatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM observations WHERE session_id=?`, sess.ID); err != nil {
		return err
	}
	for i, c := range sess.Constraints {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO observations (session_id, seq, guess, outcome) VALUES (?,?,?,?)`,
			sess.ID, i, int64(c.Guess), int64(c.Outcome),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get loads a session and its observations in play order.
func (s *SQLStore) Get(ctx context.Context, id string) (*session.Session, error) {
	var sess session.Session
	var created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fingerprint, created_at, updated_at FROM sessions WHERE id=?`, id,
	).Scan(&sess.ID, &sess.Fingerprint, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	rows, err := s.db.QueryContext(ctx,
		`SELECT guess, outcome FROM observations WHERE session_id=? ORDER BY seq ASC`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sess.Constraints = []candidates.Constraint{}
	for rows.Next() {
		var g, o int64
		if err := rows.Scan(&g, &o); err != nil {
			return nil, err
		}
		sess.Constraints = append(sess.Constraints, candidates.Constraint{
			Guess:   codec.WordID(g),
			Outcome: codec.OutcomeID(o),
		})
	}
	return &sess, rows.Err()
}
