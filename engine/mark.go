package engine

import (
	"context"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

// MarkMovable marks every piece of the side to move that has a legal move.
// Previous marks are cleared.
func (e *Engine) MarkMovable(ctx context.Context, b *board.Board) error {
	return e.mark(ctx, b, b.Turn(), checkModeMovable, position.Invalid)
}

// MarkTargetMoves marks every position the piece on src can legally move
// to. Previous marks are cleared. An empty src leaves the board unmarked.
func (e *Engine) MarkTargetMoves(ctx context.Context, b *board.Board, src position.Pos) error {
	b.ClearMarks()
	if src.IsOffBoard() {
		return nil
	}
	cp := b.Get(src)
	if cp.IsEmpty() {
		return nil
	}
	return e.mark(ctx, b, cp.Side(), checkModeTargetMove, src)
}

// mark runs a one ply deep search in the given mode and copies the collected
// marks onto the board once the search has restored it.
func (e *Engine) mark(ctx context.Context, b *board.Board, s board.Side, mode checkMode, src position.Pos) error {
	b.ClearMarks()
	e.marks = [board.TotalCells]bool{}
	e.checkSrc = src
	if err := e.run(ctx, b, s, 1, mode); err != nil {
		return err
	}
	for i, marked := range e.marks {
		if marked {
			pos := position.NewPosFromIndex(uint8(i))
			b.Set(pos, b.Get(pos).Marked())
		}
	}
	return nil
}
