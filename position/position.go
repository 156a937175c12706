package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// Invalid marks a position that does not exist, e.g. "no move found".
	Invalid Pos = 0xFF

	maskOffBoard Pos = 0x88
	maskFile     Pos = 0x0F
	maskRank     Pos = 0xF0
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a 0x88 game position. The low nibble holds the file and the high
// nibble holds the rank, so any step leaving the board sets bit 3 or bit 7.
type Pos uint8

// Offset is a signed step between two game positions.
type Offset int8

const (
	A1 Pos = iota + 0x00
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Pos = iota + 0x10
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Pos = iota + 0x20
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Pos = iota + 0x30
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Pos = iota + 0x40
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Pos = iota + 0x50
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Pos = iota + 0x60
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Pos = iota + 0x70
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

func NewPos(x, y Pos) Pos {
	return y<<4 | x
}

// NewPosFromIndex converts a dense board index (0-63) back to a game position.
func NewPosFromIndex(i uint8) Pos {
	return Pos(i>>3)<<4 | Pos(i&7)
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return Invalid, err
	}
	return NewPos(x, y), nil
}

// IsOffBoard reports whether either of the 0x88 guard bits is set.
func (p Pos) IsOffBoard() bool {
	return p&maskOffBoard != 0
}

// Index packs the position into a dense 0-63 board index.
// The position must be on the board.
func (p Pos) Index() uint8 {
	return uint8((p&maskRank)>>1 | p&maskFile)
}

// Step returns the position reached by moving d from p. The result may be
// off the board.
func (p Pos) Step(d Offset) Pos {
	return p + Pos(d)
}

// Next returns the next on-board position in A1, B1, ..., H8 order, wrapping
// back to A1 after H8. Starting from Invalid yields A1.
func (p Pos) Next() Pos {
	p++
	if p&0x08 != 0 {
		p += 0x10
		p &= maskRank
	}
	if p&0x80 != 0 {
		p = A1
	}
	return p
}

// Prev is the inverse of Next, wrapping from A1 to H8.
func (p Pos) Prev() Pos {
	p--
	if p&0x80 != 0 {
		p = H8
	} else if p&0x08 != 0 {
		p &= maskRank
		p |= 0x07
	}
	return p
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if p.IsOffBoard() {
		return ""
	}
	return p.X().NotationComponentX() + p.Y().NotationComponentY()
}

func (p Pos) X() Pos {
	return p & maskFile
}

func (p Pos) Y() Pos {
	return p >> 4
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x >= 'a'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y >= '1'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if MaxComponentScalar <= p {
		return ""
	}
	return string(rune('1' + p))
}
