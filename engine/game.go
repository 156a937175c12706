package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

// ManualMove plays mv for the side to move and decides whether the game has
// ended: a captured King loses, and a side left without a move has lost if
// its King is attacked or drawn otherwise.
func (e *Engine) ManualMove(ctx context.Context, b *board.Board, mv board.Move) error {
	if b.IsGameEnd() {
		return ErrGameEnded
	}
	if !b.IsLegalMove(mv) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}

	if cp := b.Get(mv.To); cp.Piece() == board.PieceKing {
		b.SetOutcome(board.NewOutcomeLost(cp.Side()))
	}

	b.ClearMarks()
	b.ReduceHistoryByFullMove()
	b.Apply(mv.From, mv.To)
	b.IncrementPly()
	if b.IsGameEnd() {
		return nil
	}
	return e.detectGameEnd(ctx, b)
}

// detectGameEnd runs a one ply deep search for the side to move. Without
// any move the King decides between loss and draw.
func (e *Engine) detectGameEnd(ctx context.Context, b *board.Board) error {
	s := b.Turn()
	if err := e.run(ctx, b, s, 1, checkModeNone); err != nil {
		return err
	}
	if e.frames[0].bestFrom != position.Invalid {
		return nil
	}

	king := b.KingPos(s)
	if king == position.Invalid {
		return nil
	}
	if b.AttackCount(king, s.Opposite()) != 0 {
		b.SetOutcome(board.NewOutcomeLost(s))
	} else {
		b.SetOutcome(board.OutcomeDraw)
	}
	return nil
}

// ComputerMove searches the board and plays the best move found. When every
// move loses to a mate within the search depth, the first legal move is
// played.
func (e *Engine) ComputerMove(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, error) {
	if b.IsGameEnd() {
		return board.NullMove, ErrGameEnded
	}
	res, err := e.Search(ctx, b, cfg)
	mv := res.Move
	if errors.Is(err, ErrNoLegalMove) {
		moves := b.LegalMoves(b.Turn())
		if len(moves) == 0 {
			return board.NullMove, err
		}
		mv = moves[0]
	} else if err != nil {
		return board.NullMove, err
	}
	if err := e.ManualMove(ctx, b, mv); err != nil {
		return board.NullMove, err
	}
	return mv, nil
}

// Undo takes back the last full move, the user's and the reply. It reports
// false when fewer than two plies can be taken back.
func (e *Engine) Undo(b *board.Board) bool {
	if b.Ply() < 2 || b.HistoryLen() < 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		b.UndoHalfMove()
		b.DecrementPly()
	}
	b.SetOutcome(board.OutcomeNone)
	b.ClearMarks()
	return true
}
