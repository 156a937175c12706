package board

import "github.com/daystram/rook/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

var (
	maskCastleRights = [5]CastleRights{
		CastleDirectionWhiteLeft:  0b0001,
		CastleDirectionWhiteRight: 0b0010,
		CastleDirectionBlackLeft:  0b0100,
		CastleDirectionBlackRight: 0b1000,
	}

	// posCastleCorner is the Rook home square belonging to each direction.
	posCastleCorner = [5]position.Pos{
		CastleDirectionUnknown:    position.Invalid,
		CastleDirectionWhiteLeft:  position.A1,
		CastleDirectionWhiteRight: position.H1,
		CastleDirectionBlackLeft:  position.A8,
		CastleDirectionBlackRight: position.H8,
	}

	posKingHome = [2]position.Pos{
		SideWhite: position.E1,
		SideBlack: position.E8,
	}
)

// AllCastleRights allows every castling direction.
const AllCastleRights CastleRights = 0b1111

// NewCastleDirection returns the direction for side s towards the H file
// (right) or the A file (left).
func NewCastleDirection(s Side, right bool) CastleDirection {
	switch {
	case s == SideWhite && right:
		return CastleDirectionWhiteRight
	case s == SideWhite:
		return CastleDirectionWhiteLeft
	case right:
		return CastleDirectionBlackRight
	default:
		return CastleDirectionBlackLeft
	}
}

// castleDirectionByCorner returns the direction whose Rook starts on pos.
func castleDirectionByCorner(pos position.Pos) CastleDirection {
	switch pos {
	case position.A1:
		return CastleDirectionWhiteLeft
	case position.H1:
		return CastleDirectionWhiteRight
	case position.A8:
		return CastleDirectionBlackLeft
	case position.H8:
		return CastleDirectionBlackRight
	default:
		return CastleDirectionUnknown
	}
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// CastleRights holds one bit per corner: bit 0 White left, bit 1 White
// right, bit 2 Black left, bit 3 Black right.
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c *CastleRights) IsAllowed(d CastleDirection) bool {
	return *c&maskCastleRights[d] != 0
}

func (c *CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return *c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return *c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// Revoke clears both directions of side s.
func (c *CastleRights) Revoke(s Side) {
	c.Set(NewCastleDirection(s, true), false)
	c.Set(NewCastleDirection(s, false), false)
}

// mirror swaps the White and Black bits.
func (c CastleRights) mirror() CastleRights {
	return (c&0b0011)<<2 | (c&0b1100)>>2
}
