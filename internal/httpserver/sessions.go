package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/solver/internal/candidates"
	"github.com/robalobadob/wordle/apps/solver/internal/codec"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// maxListed caps the candidate words returned by GET /sessions/{id}.
const maxListed = 100

// mountSessions registers POST /sessions and the token-gated /sessions/{id}/* routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/", s.handleGetSession)
			r.Post("/observe", s.handleObserve)
			r.Post("/best", s.handleBest)
		})
	})
}

type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Remaining int    `json:"remaining"`
}

// handleNewSession creates an empty session bound to the loaded table.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.table.Fingerprint())
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, _, err := s.tokens.sign(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusCreated, newSessionRes{SessionID: sess.ID, Token: tok, Remaining: s.table.Len()})
}

type observation struct {
	Guess   string `json:"guess"`
	Outcome string `json:"outcome"`
}

type sessionRes struct {
	SessionID    string        `json:"sessionId"`
	Observations []observation `json:"observations"`
	Remaining    int           `json:"remaining"`
	Candidates   []string      `json:"candidates"`
	Solved       bool          `json:"solved"`
}

// handleGetSession returns the observations and the restored candidate set.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, remaining, ok := s.restore(w, r)
	if !ok {
		return
	}
	obs := make([]observation, len(sess.Constraints))
	for i, c := range sess.Constraints {
		obs[i] = observation{Guess: c.Guess.String(), Outcome: c.Outcome.String()}
	}
	listed := remaining[:min(len(remaining), maxListed)]
	writeJSON(w, http.StatusOK, sessionRes{
		SessionID:    sess.ID,
		Observations: obs,
		Remaining:    len(remaining),
		Candidates:   listed.Words(),
		Solved:       sess.Solved(),
	})
}

type observeRes struct {
	Remaining int  `json:"remaining"`
	Solved    bool `json:"solved"`
}

// handleObserve appends one (guess, outcome) pair. The load-append-save cycle
// holds the session's lock so concurrent observes do not drop constraints.
//
// Errors:
//   - malformed guess/outcome or a guess outside the vocabulary -> 400
//   - session recorded against another table -> 409
func (s *Server) handleObserve(w http.ResponseWriter, r *http.Request) {
	var req observation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	unlock := s.locks.lock(sessionID(r))
	defer unlock()

	sess, ok := s.load(w, r)
	if !ok {
		return
	}
	if _, err := sess.Observe(s.table, req.Guess, req.Outcome); err != nil {
		s.fail(w, r, err)
		return
	}
	remaining, err := sess.Candidates(s.table)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, observeRes{Remaining: len(remaining), Solved: sess.Solved()})
}

type bestRes struct {
	Guess     string  `json:"guess"`
	Bits      float64 `json:"bits"`
	Remaining int     `json:"remaining"`
	Candidate bool    `json:"candidate"` // guess is itself a possible answer
}

// handleBest runs a best-guess search over the remaining candidates.
// ?pool=candidates restricts guesses to the remaining candidates; the default
// pool is the whole vocabulary. ?guesses=w1,w2 names the pool explicitly and
// takes precedence over pool; every word must be in the vocabulary.
func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	_, remaining, ok := s.restore(w, r)
	if !ok {
		return
	}
	if len(remaining) == 0 {
		writeError(w, http.StatusConflict, "no_candidates")
		return
	}

	var pool candidates.Set
	q := r.URL.Query()
	switch {
	case q.Get("guesses") != "":
		var err error
		if pool, err = candidates.OfWords(s.table, q.Get("guesses")); err != nil {
			s.fail(w, r, err)
			return
		}
	case q.Get("pool") == "" || q.Get("pool") == "vocabulary":
		pool = s.table.Vocabulary()
	case q.Get("pool") == "candidates":
		pool = remaining
	default:
		writeError(w, http.StatusBadRequest, "invalid_pool")
		return
	}

	logger := hlog.FromRequest(r).With().Str("session", sessionID(r)).Int("remaining", len(remaining)).Logger()
	best, err := search.BestGuess(s.table, remaining, pool, search.Options{
		Workers:  s.cfg.SearchWorkers,
		Interval: s.cfg.ProgressInterval,
		Reporter: search.LogReporter(logger),
		Context:  r.Context(),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	logger.Info().Stringer("guess", best.Guess).Float64("bits", best.Bits).Msg("best guess")
	writeJSON(w, http.StatusOK, bestRes{
		Guess:     best.Guess.String(),
		Bits:      best.Bits,
		Remaining: len(remaining),
		Candidate: remaining.Contains(best.Guess),
	})
}

// load fetches the session named by the route, writing 404 when it is missing.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return sess, true
}

// restore loads the session and replays its constraints.
func (s *Server) restore(w http.ResponseWriter, r *http.Request) (*session.Session, candidates.Set, bool) {
	sess, ok := s.load(w, r)
	if !ok {
		return nil, nil, false
	}
	remaining, err := sess.Candidates(s.table)
	if err != nil {
		s.fail(w, r, err)
		return nil, nil, false
	}
	return sess, remaining, true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, codec.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, table.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrStaleTable), errors.Is(err, search.ErrNoCandidates):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
