package board

import "github.com/daystram/rook/position"

// StepFunc is called for every candidate step from a piece. Off-board
// targets and targets holding a piece of the mover are never passed in.
// The board must be unchanged when the function returns. Returning false
// stops the generation.
type StepFunc func(from, to position.Pos) bool

// Generate calls fn for every pseudo-legal step of side s. Pieces are
// visited in A1, B1, ..., H8 order and each piece's steps follow its
// direction table, which makes the order fully deterministic. It returns
// false if fn stopped the generation.
func (b *Board) Generate(s Side, fn StepFunc) bool {
	pos := position.A1
	for {
		if cp := b.Get(pos); !cp.IsEmpty() && cp.Side() == s {
			if !b.GenerateFrom(pos, fn) {
				return false
			}
		}
		if pos = pos.Next(); pos == position.A1 {
			return true
		}
	}
}

// GenerateFrom calls fn for every pseudo-legal step of the piece on from.
// Castling steps of a King come before its normal steps.
func (b *Board) GenerateFrom(from position.Pos, fn StepFunc) bool {
	cp := b.Get(from)
	switch cp.Piece() {
	case PiecePawn:
		return b.generatePawn(from, cp.Side(), fn)
	case PieceKnight:
		return b.generateSteps(from, cp.Side(), dirKnight, false, fn)
	case PieceBishop:
		return b.generateSteps(from, cp.Side(), dirBishop, true, fn)
	case PieceRook:
		return b.generateSteps(from, cp.Side(), dirRook, true, fn)
	case PieceQueen:
		return b.generateSteps(from, cp.Side(), dirQueen, true, fn)
	case PieceKing:
		s := cp.Side()
		if b.canCastle(from, s, false) && !fn(from, from-2) {
			return false
		}
		if b.canCastle(from, s, true) && !fn(from, from+2) {
			return false
		}
		return b.generateSteps(from, s, dirQueen, false, fn)
	default:
		return true
	}
}

func (b *Board) generateSteps(from position.Pos, s Side, dirs []position.Offset, multi bool, fn StepFunc) bool {
	for _, d := range dirs {
		to := from
		for {
			to = to.Step(d)
			if b.IsIllegalTarget(to, s) {
				break
			}
			if !fn(from, to) {
				return false
			}
			if !b.Get(to).IsEmpty() || !multi {
				break
			}
		}
	}
	return true
}

func (b *Board) generatePawn(from position.Pos, s Side, fn StepFunc) bool {
	forward, home := position.Offset(16), position.Pos(1)
	captures := [2]position.Offset{15, 17}
	if s == SideBlack {
		forward, home = -16, Height-2
		captures = [2]position.Offset{-15, -17}
	}

	if to := from.Step(forward); !to.IsOffBoard() && b.Get(to).IsEmpty() {
		if !fn(from, to) {
			return false
		}
		if from.Y() == home {
			if to2 := to.Step(forward); b.Get(to2).IsEmpty() {
				if !fn(from, to2) {
					return false
				}
			}
		}
	}

	for _, d := range captures {
		to := from.Step(d)
		if b.IsIllegalTarget(to, s) {
			continue
		}
		if b.Get(to).IsEmpty() && !b.isEnPassantTarget(to, s) {
			continue
		}
		if !fn(from, to) {
			return false
		}
	}
	return true
}

// isEnPassantTarget reports whether a Pawn of side s may capture en passant
// by moving onto the empty position to.
func (b *Board) isEnPassantTarget(to position.Pos, s Side) bool {
	dbl := b.pawnDoubleMove[s.Opposite()]
	if dbl == position.Invalid {
		return false
	}
	if s == SideWhite {
		return dbl+16 == to
	}
	return dbl == to+16
}

// canCastle checks the castling conditions of the King of side s standing
// on from: the right is still held, the King is on its home square with the
// own Rook on the corner, the King is not attacked and every position
// between King and Rook is empty and not attacked.
func (b *Board) canCastle(from position.Pos, s Side, right bool) bool {
	d := NewCastleDirection(s, right)
	if !b.castleRights.IsAllowed(d) || from != posKingHome[s] {
		return false
	}
	if b.Get(posCastleCorner[d]).Unmarked() != NewColoredPiece(s, PieceRook) {
		return false
	}
	opponent := s.Opposite()
	if b.AttackCount(from, opponent) > 0 {
		return false
	}

	step, cnt := position.Offset(-1), 3
	if right {
		step, cnt = 1, 2
	}
	pos := from
	for i := 0; i < cnt; i++ {
		pos = pos.Step(step)
		if !b.Get(pos).IsEmpty() || b.AttackCount(pos, opponent) > 0 {
			return false
		}
	}
	return true
}

// PseudoLegalMoves collects every step of side s, including steps which
// leave the own King attacked.
func (b *Board) PseudoLegalMoves(s Side) []Move {
	moves := make([]Move, 0, 64)
	b.Generate(s, func(from, to position.Pos) bool {
		moves = append(moves, Move{From: from, To: to})
		return true
	})
	return moves
}

// LegalMoves collects every step of side s that does not leave the own King
// attacked.
func (b *Board) LegalMoves(s Side) []Move {
	moves := make([]Move, 0, 64)
	b.Generate(s, func(from, to position.Pos) bool {
		b.Apply(from, to)
		if !b.IsKingChecked(s) {
			moves = append(moves, Move{From: from, To: to})
		}
		b.UndoHalfMove()
		return true
	})
	return moves
}

// IsLegalMove reports whether m is one of the legal moves of the side to
// move.
func (b *Board) IsLegalMove(m Move) bool {
	if m.IsNull() {
		return false
	}
	cp := b.Get(m.From)
	if cp.IsEmpty() || cp.Side() != b.Turn() {
		return false
	}
	s := cp.Side()
	found := false
	b.GenerateFrom(m.From, func(from, to position.Pos) bool {
		if to != m.To {
			return true
		}
		b.Apply(from, to)
		found = !b.IsKingChecked(s)
		b.UndoHalfMove()
		return false
	})
	return found
}
