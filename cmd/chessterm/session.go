package main

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-arena/internal/chess"
	"github.com/benbeisheim/chess-arena/internal/engine"
	"github.com/benbeisheim/chess-arena/internal/setup"
)

var (
	errGameOver    = errors.New("game is over")
	errNotYourTurn = errors.New("not your turn")
	errIllegal     = errors.New("illegal move")
	errDeclined    = errors.New("promotion declined")
)

// session is a local game against the computer.
type session struct {
	pos        *chess.Position
	toMove     chess.Color
	halfMove   int
	human      chess.Color
	difficulty engine.Difficulty
	searcher   *engine.Searcher
	outcome    chess.Outcome
	last       *chess.Move
	history    []string
}

func newSession(fen string, human chess.Color, d engine.Difficulty, searcher *engine.Searcher) (*session, error) {
	s, err := setup.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	sess := &session{
		pos:        s.Position,
		toMove:     s.ToMove,
		halfMove:   s.HalfMoveClock,
		human:      human,
		difficulty: d.Clamp(),
		searcher:   searcher,
	}
	sess.outcome = engine.Classify(sess.pos, sess.toMove, sess.halfMove)
	return sess, nil
}

func (s *session) humanToMove() bool {
	return !s.outcome.Over() && s.toMove == s.human
}

// needsPromotion reports whether m would promote if played now.
func (s *session) needsPromotion(m chess.Move) bool {
	return engine.NeedsPromotion(s.pos, m)
}

// play commits a human move. A declined promotion leaves the game as it was.
func (s *session) play(m chess.Move, choose engine.PromotionChooser) error {
	switch {
	case s.outcome.Over():
		return errGameOver
	case s.toMove != s.human:
		return errNotYourTurn
	case !engine.IsValidMove(s.pos, m.FromRow, m.FromCol, m.ToRow, m.ToCol, s.human):
		return fmt.Errorf("%w: %s", errIllegal, m)
	}
	if !s.commit(m, choose) {
		return errDeclined
	}
	return nil
}

// computerMove searches and plays the computer's reply.
func (s *session) computerMove() (chess.Move, bool) {
	if s.outcome.Over() || s.toMove == s.human {
		return chess.Move{}, false
	}
	legal := engine.LegalMoves(s.pos, s.toMove)
	m, ok := s.searcher.SelectMove(s.pos, legal, s.difficulty, s.toMove == chess.White)
	if !ok {
		return chess.Move{}, false
	}
	s.commit(m, engine.AutoQueen)
	return m, true
}

func (s *session) commit(m chess.Move, choose engine.PromotionChooser) bool {
	r, ok := engine.Commit(s.pos, m, choose)
	if !ok {
		return false
	}
	s.halfMove = engine.NextHalfMoveClock(s.halfMove, r)
	s.toMove = s.toMove.Opposite()
	s.last = &m
	entry := m.String()
	if r.Promotion != "" {
		entry += r.Promotion.Notation()
	}
	s.history = append(s.history, entry)

	if o, ok := engine.KingCapturedOutcome(r); ok {
		s.outcome = o
	} else {
		s.outcome = engine.Classify(s.pos, s.toMove, s.halfMove)
	}
	return true
}
