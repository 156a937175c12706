package board

import "github.com/daystram/rook/position"

// Apply moves the piece on from to to without any legality check. Double
// Pawn steps, queening, en passant, castling and the castling rights are
// handled here, and the half move is pushed to the history so that
// UndoHalfMove restores the exact previous state.
func (b *Board) Apply(from, to position.Pos) {
	hm := b.pushHalfMove()

	cpFrom, cpTo := b.Get(from), b.Get(to)
	s, moved := cpFrom.Side(), cpFrom.Piece()

	hm.MainPiece, hm.MainFrom, hm.MainTo = cpFrom, from, to
	hm.OtherPiece, hm.OtherFrom, hm.OtherTo = cpTo, to, position.Invalid

	// a second cell may be cleared (en passant, castling) and one more may be
	// set (castling)
	clearPos2, setPos2 := position.Invalid, position.Invalid
	var setCP2 ColoredPiece

	// the opponent's double move may only be answered right away
	opponentDoubleMove := b.pawnDoubleMove[s.Opposite()]
	b.pawnDoubleMove = [2]position.Pos{position.Invalid, position.Invalid}

	switch moved {
	case PiecePawn:
		switch {
		case from.Y()-to.Y() == 2 || to.Y()-from.Y() == 2:
			b.pawnDoubleMove[s] = to
		case to.Y() == 0 || to.Y() == Height-1:
			cpFrom = cpFrom&^maskPiece | ColoredPiece(PieceQueen)
		case from.X() != to.X() && cpTo.IsEmpty() && opponentDoubleMove != position.Invalid:
			clearPos2 = opponentDoubleMove
			hm.OtherFrom = clearPos2
			hm.OtherPiece = b.Get(clearPos2)
		}
	case PieceKing:
		b.castleRights.Revoke(s)
		rookFrom, rookTo := position.Invalid, position.Invalid
		switch {
		case from-to == 2:
			rookFrom, rookTo = from-4, from-1
		case to-from == 2:
			rookFrom, rookTo = from+3, from+1
		}
		if !rookFrom.IsOffBoard() {
			clearPos2, setPos2 = rookFrom, rookTo
			setCP2 = b.Get(clearPos2)
			hm.OtherPiece, hm.OtherFrom, hm.OtherTo = setCP2, clearPos2, setPos2
		}
	case PieceRook:
		if d := castleDirectionByCorner(from); d != CastleDirectionUnknown {
			b.castleRights.Set(d, false)
		}
	}

	// a Rook captured on its home corner can no longer castle
	if d := castleDirectionByCorner(to); d != CastleDirectionUnknown && !cpTo.IsEmpty() {
		b.castleRights.Set(d, false)
	}

	if moved == PiecePawn || !hm.OtherPiece.IsEmpty() && hm.OtherTo == position.Invalid {
		b.halfMoveClock = 0
	} else if b.halfMoveClock < 255 {
		b.halfMoveClock++
	}

	b.Set(to, cpFrom)
	if setPos2 != position.Invalid {
		b.Set(setPos2, setCP2)
	}
	b.Set(from, 0)
	if clearPos2 != position.Invalid {
		b.Set(clearPos2, 0)
	}
}

// UndoHalfMove reverts the most recent half move. It does nothing when the
// history is empty.
func (b *Board) UndoHalfMove() {
	if b.historyLen == 0 {
		return
	}
	b.historyLen--
	hm := &b.history[b.historyLen]

	b.pawnDoubleMove = hm.PawnDoubleMove
	b.castleRights = hm.CastleRights
	b.halfMoveClock = hm.HalfMoveClock

	b.Set(hm.MainFrom, hm.MainPiece)
	b.Set(hm.MainTo, 0)
	if hm.OtherFrom != position.Invalid {
		b.Set(hm.OtherFrom, hm.OtherPiece)
	}
	if hm.OtherTo != position.Invalid {
		b.Set(hm.OtherTo, 0)
	}
}

// pushHalfMove reserves the next history entry and stores the pre-move
// state in it. Once the history is full the last entry is reused.
func (b *Board) pushHalfMove() *HalfMove {
	hm := &b.history[b.historyLen]
	if b.historyLen < HistorySize-1 {
		b.historyLen++
	}
	hm.PawnDoubleMove = b.pawnDoubleMove
	hm.CastleRights = b.castleRights
	hm.HalfMoveClock = b.halfMoveClock
	return hm
}

// ReduceHistoryByFullMove drops the oldest full moves until at most
// HistoryUserSize half moves remain.
func (b *Board) ReduceHistoryByFullMove() {
	for b.historyLen > HistoryUserSize {
		copy(b.history[:b.historyLen-2], b.history[2:b.historyLen])
		b.historyLen -= 2
	}
}

func (b *Board) ClearHistory() {
	b.historyLen = 0
}

func (b *Board) HistoryLen() int {
	return int(b.historyLen)
}

// HalfMoveAt returns the i-th oldest half move in the history.
func (b *Board) HalfMoveAt(i int) (HalfMove, bool) {
	if i < 0 || i >= int(b.historyLen) {
		return HalfMove{}, false
	}
	return b.history[i], true
}

// LastHalfMove returns the most recent half move in the history.
func (b *Board) LastHalfMove() (HalfMove, bool) {
	return b.HalfMoveAt(int(b.historyLen) - 1)
}
