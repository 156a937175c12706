package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/rook/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	// MaxStackSize is the number of plies a single search may keep applied
	// on the board at once.
	MaxStackSize = 8

	// HistoryUserSize is the number of half moves kept for user undo.
	HistoryUserSize = 6

	// HistorySize is the capacity of the half move history.
	HistorySize = MaxStackSize + HistoryUserSize + 2

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrKingMissing = errors.New("king missing")
)

// Board is the complete game state: the cells, the side to move, en passant
// and castling state, the game outcome and the bounded half move history.
// A Board value owns all of its state, copying it yields an independent game.
type Board struct {
	cells [TotalCells]ColoredPiece

	// ply counts half moves since the start. The lowest bit is the side to move.
	ply uint16

	// pawnDoubleMove holds, per side, the destination of a Pawn that has just
	// moved two ranks, or position.Invalid.
	pawnDoubleMove [2]position.Pos
	castleRights   CastleRights
	halfMoveClock  uint8
	outcome        Outcome

	history    [HistorySize]HalfMove
	historyLen uint8
}

type boardConfig struct {
	fen    string
	hasFEN bool
	empty  bool
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen, cfg.hasFEN = fen, true
	}
}

// WithEmpty starts from an empty board with full castling rights, for
// positions built with Set.
func WithEmpty() BoardOption {
	return func(cfg *boardConfig) {
		cfg.empty = true
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{}
	switch {
	case cfg.empty:
		b.Clear()
	case cfg.hasFEN:
		if err := UnmarshalFEN(cfg.fen, b); err != nil {
			return nil, err
		}
	default:
		b.Setup()
	}
	return b, nil
}

// Clear empties the board and resets every counter.
func (b *Board) Clear() {
	*b = Board{
		pawnDoubleMove: [2]position.Pos{position.Invalid, position.Invalid},
		castleRights:   AllCastleRights,
	}
}

// Setup resets b to the standard starting position.
func (b *Board) Setup() {
	b.Clear()
	back := [Width]Piece{PieceRook, PieceKnight, PieceBishop, PieceQueen, PieceKing, PieceBishop, PieceKnight, PieceRook}
	for x := position.Pos(0); x < Width; x++ {
		b.Set(position.NewPos(x, 0), NewColoredPiece(SideWhite, back[x]))
		b.Set(position.NewPos(x, 1), NewColoredPiece(SideWhite, PiecePawn))
		b.Set(position.NewPos(x, 6), NewColoredPiece(SideBlack, PiecePawn))
		b.Set(position.NewPos(x, 7), NewColoredPiece(SideBlack, back[x]))
	}
}

// Get returns the colored piece on pos. pos must be on the board.
func (b *Board) Get(pos position.Pos) ColoredPiece {
	return b.cells[pos.Index()]
}

// Set places cp on pos. pos must be on the board.
func (b *Board) Set(pos position.Pos, cp ColoredPiece) {
	b.cells[pos.Index()] = cp
}

// IsIllegalTarget reports whether a piece of side s cannot end its move on
// pos, because pos is off the board or holds a piece of s.
func (b *Board) IsIllegalTarget(pos position.Pos, s Side) bool {
	if pos.IsOffBoard() {
		return true
	}
	cp := b.Get(pos)
	return !cp.IsEmpty() && cp.Side() == s
}

func (b *Board) Ply() uint16 {
	return b.ply
}

func (b *Board) Turn() Side {
	return Side(b.ply & 1)
}

func (b *Board) FullMoveClock() uint16 {
	return b.ply/2 + 1
}

func (b *Board) HalfMoveClock() uint8 {
	return b.halfMoveClock
}

// IncrementPly hands the turn to the other side. Only real moves advance
// the ply, moves applied during a search do not.
func (b *Board) IncrementPly() {
	b.ply++
}

// DecrementPly is the inverse of IncrementPly.
func (b *Board) DecrementPly() {
	if b.ply > 0 {
		b.ply--
	}
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// PawnDoubleMove returns the destination of the Pawn of side s which has
// just moved two ranks, or position.Invalid.
func (b *Board) PawnDoubleMove(s Side) position.Pos {
	return b.pawnDoubleMove[s]
}

func (b *Board) Outcome() Outcome {
	return b.outcome
}

func (b *Board) IsGameEnd() bool {
	return b.outcome.IsEnded()
}

func (b *Board) SetOutcome(o Outcome) {
	b.outcome = o
}

// KingPos returns the position of the King of side s, or position.Invalid.
func (b *Board) KingPos(s Side) position.Pos {
	king := NewColoredPiece(s, PieceKing)
	for i, cp := range b.cells {
		if cp&maskColoredPiece == king {
			return position.NewPosFromIndex(uint8(i))
		}
	}
	return position.Invalid
}

// Validate checks that each side has exactly one King.
func (b *Board) Validate() error {
	var kings [2]int
	for _, cp := range b.cells {
		if cp.Piece() == PieceKing {
			kings[cp.Side()]++
		}
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		if kings[s] != 1 {
			return fmt.Errorf("%w: %s has %d", ErrKingMissing, s, kings[s])
		}
	}
	return nil
}

// ClearMarks removes every mark from the board.
func (b *Board) ClearMarks() {
	for i := range b.cells {
		b.cells[i] = b.cells[i].Unmarked()
	}
}

// NextMarked walks the board from pos (exclusive) and returns the next
// marked position, or the previous one if reverse is set. Starting from
// position.Invalid begins at A1 (H8 if reverse). position.Invalid is
// returned when there are no marks or the end of the board is reached.
func (b *Board) NextMarked(pos position.Pos, reverse bool) position.Pos {
	start, wrap := pos, position.A1
	if reverse {
		wrap = position.H8
	}
	for i := 0; i < int(TotalCells); i++ {
		if reverse {
			pos = pos.Prev()
		} else {
			pos = pos.Next()
		}
		if start != position.Invalid && pos == wrap {
			return position.Invalid
		}
		if b.Get(pos).IsMarked() {
			return pos
		}
	}
	return position.Invalid
}

// Clone returns an independent copy of the board, history included.
func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

// Mirror returns the position with colors swapped and ranks flipped. The
// side to move is swapped too. History is not carried over.
func (b *Board) Mirror() *Board {
	m := &Board{
		ply:           b.ply ^ 1,
		castleRights:  b.castleRights.mirror(),
		halfMoveClock: b.halfMoveClock,
		outcome:       b.outcome,
	}
	for i, cp := range b.cells {
		pos := position.NewPosFromIndex(uint8(i))
		flipped := position.NewPos(pos.X(), Height-1-pos.Y())
		if !cp.IsEmpty() {
			cp = NewColoredPiece(cp.Side().Opposite(), cp.Piece())
		}
		m.Set(flipped, cp)
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		m.pawnDoubleMove[s.Opposite()] = position.Invalid
		if dbl := b.pawnDoubleMove[s]; dbl != position.Invalid {
			m.pawnDoubleMove[s.Opposite()] = position.NewPos(dbl.X(), Height-1-dbl.Y())
		}
	}
	switch b.outcome {
	case OutcomeWhiteLost:
		m.outcome = OutcomeBlackLost
	case OutcomeBlackLost:
		m.outcome = OutcomeWhiteLost
	}
	return m
}

// Equals compares the position and game state of two boards, ignoring
// marks and history.
func (b *Board) Equals(o *Board) bool {
	for i := range b.cells {
		if b.cells[i].Unmarked() != o.cells[i].Unmarked() {
			return false
		}
	}
	return b.ply == o.ply &&
		b.pawnDoubleMove == o.pawnDoubleMove &&
		b.castleRights == o.castleRights &&
		b.halfMoveClock == o.halfMoveClock &&
		b.outcome == o.outcome
}

// Dump renders the board as text. Marked cells are prefixed with '#'.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := Height; y > 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y))
		for x := position.Pos(0); x < Width; x++ {
			cp := b.Get(position.NewPos(x, y-1))
			sym := cp.String()
			if sym == "" {
				sym = " "
			}
			mark := " "
			if cp.IsMarked() {
				mark = "#"
			}
			_, _ = builder.WriteString(fmt.Sprintf("%s%s |", mark, sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %04b\nply:  %4d\nhist: %4d\nstat: %s", b.castleRights, b.ply, b.historyLen, b.outcome)
}
