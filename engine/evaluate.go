package engine

import (
	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

const (
	// EvalMin is the score of a lost position and the initial best score
	// of every search frame.
	EvalMin int16 = -32767

	// EvalMax is the score of a won position.
	EvalMax int16 = 32767

	// materialShift scales material above the positional bonus.
	materialShift = 3
)

// scorePosition rewards Pawns and Knights for standing close to the center.
// The bonus of a position is the product of its file and rank weights.
var scorePosition = [position.MaxComponentScalar]int16{0, 1, 1, 2, 2, 1, 1, 0}

// Evaluate scores the board from the perspective of side s. A missing King
// is not an error here: a board without the own King scores EvalMin and a
// board without the opponent's King scores EvalMax. Use board.Validate to
// reject such boards up front.
func Evaluate(b *board.Board, s board.Side) int16 {
	var material, positional [2]int16
	var kings [2]bool

	pos := position.A1
	for {
		if cp := b.Get(pos); !cp.IsEmpty() {
			side := cp.Side()
			switch p := cp.Piece(); p {
			case board.PieceKing:
				kings[side] = true
			case board.PiecePawn, board.PieceKnight:
				positional[side] += scorePosition[pos.X()] * scorePosition[pos.Y()]
				material[side] += int16(p.Weight())
			default:
				material[side] += int16(p.Weight())
			}
		}
		if pos = pos.Next(); pos == position.A1 {
			break
		}
	}

	opponent := s.Opposite()
	if !kings[s] {
		return EvalMin
	}
	if !kings[opponent] {
		return EvalMax
	}
	return (material[s]-material[opponent])<<materialShift + positional[s] - positional[opponent]
}
