package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/rook/position"
)

var (
	ErrInvalidMove = errors.New("invalid move")

	// ErrUnderpromotion is returned for promotions to anything but a Queen.
	ErrUnderpromotion = errors.New("underpromotion not supported")
)

// Move is a source and destination pair. Promotion, castling and en passant
// are implied by the board the move is applied to.
type Move struct {
	From, To position.Pos
}

// NullMove is the "no move found" value.
var NullMove = Move{From: position.Invalid, To: position.Invalid}

func NewMoveFromUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	if len(s) == 5 && strings.ToLower(s[4:]) != "q" {
		return NullMove, fmt.Errorf("%w: %q", ErrUnderpromotion, s)
	}
	return Move{From: from, To: to}, nil
}

func (m Move) IsNull() bool {
	return m.From.IsOffBoard() || m.To.IsOffBoard()
}

func (m Move) Equals(n Move) bool {
	return m.From == n.From && m.To == n.To
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From.Notation() + m.To.Notation()
}

// HalfMove records everything needed to undo exactly one ply.
type HalfMove struct {
	// MainPiece is moved from MainFrom to MainTo.
	MainPiece        ColoredPiece
	MainFrom, MainTo position.Pos

	// OtherPiece is the captured piece, the Rook of a castling or empty.
	// OtherFrom is where it is removed from, which differs from MainTo for
	// en passant and castling. OtherTo is only set for castling.
	OtherPiece         ColoredPiece
	OtherFrom, OtherTo position.Pos

	// Pre-move state.
	PawnDoubleMove [2]position.Pos
	CastleRights   CastleRights
	HalfMoveClock  uint8
}

// String returns the long algebraic notation, e.g. Ka1-b2, e4xd5 or 0-0.
func (hm HalfMove) String() string {
	p := hm.MainPiece.Piece()
	if p == PieceNone {
		return ""
	}
	if p == PieceKing && hm.OtherTo != position.Invalid {
		if hm.MainTo > hm.MainFrom {
			return "0-0"
		}
		return "0-0-0"
	}
	sep := "-"
	if !hm.OtherPiece.IsEmpty() {
		sep = "x"
	}
	return p.SymbolAlgebra(SideWhite) + hm.MainFrom.Notation() + sep + hm.MainTo.Notation()
}

func (hm HalfMove) Move() Move {
	return Move{From: hm.MainFrom, To: hm.MainTo}
}
