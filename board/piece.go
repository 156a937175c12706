package board

type Piece uint8

const (
	PieceNone Piece = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

// pieceWeight is the material weight of each piece. The King is not counted.
var pieceWeight = [PieceKing + 1]uint8{
	PiecePawn:   1,
	PieceKnight: 3,
	PieceBishop: 3,
	PieceRook:   5,
	PieceQueen:  9,
}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceKnight:
		return "Knight"
	case PieceBishop:
		return "Bishop"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// Weight returns the material weight of the piece.
func (p Piece) Weight() uint8 {
	if p > PieceKing {
		return 0
	}
	return pieceWeight[p]
}

func (p Piece) SymbolAlgebra(s Side) string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(s)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceKnight:
		sym = 'N'
	case PieceBishop:
		sym = 'B'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceKnight:
			return "♘"
		case PieceBishop:
			return "♗"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceKnight:
			return "♞"
		case PieceBishop:
			return "♝"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

// ColoredPiece packs a piece kind (bits 0-3), its side (bit 4) and a
// transient UI mark (bit 5) into one byte. The zero value is an empty cell.
type ColoredPiece uint8

const (
	maskPiece ColoredPiece = 0x0F
	maskSide  ColoredPiece = 0x10
	maskMark  ColoredPiece = 0x20

	// maskColoredPiece covers side and piece, without the mark.
	maskColoredPiece ColoredPiece = 0x1F
)

func NewColoredPiece(s Side, p Piece) ColoredPiece {
	return ColoredPiece(s)<<4 | ColoredPiece(p)
}

func (cp ColoredPiece) Piece() Piece {
	return Piece(cp & maskPiece)
}

func (cp ColoredPiece) Side() Side {
	return Side((cp & maskSide) >> 4)
}

func (cp ColoredPiece) IsEmpty() bool {
	return cp.Piece() == PieceNone
}

func (cp ColoredPiece) IsMarked() bool {
	return cp&maskMark != 0
}

func (cp ColoredPiece) Marked() ColoredPiece {
	return cp | maskMark
}

func (cp ColoredPiece) Unmarked() ColoredPiece {
	return cp &^ maskMark
}

func (cp ColoredPiece) String() string {
	if cp.IsEmpty() {
		return ""
	}
	return cp.Piece().SymbolFEN(cp.Side())
}
