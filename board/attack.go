package board

import "github.com/daystram/rook/position"

var (
	dirRook   = []position.Offset{1, 16, -16, -1}
	dirBishop = []position.Offset{15, 17, -17, -15}
	dirQueen  = []position.Offset{1, 16, -16, -1, 15, 17, -17, -15}
	dirKnight = []position.Offset{14, -14, 18, -18, 31, -31, 33, -33}
)

// AttackInfo sums, per side, the pieces that could move onto a position.
type AttackInfo struct {
	// Weight is the summed material weight of the attackers. Kings weigh
	// nothing, use Count to detect them.
	Weight [2]uint8
	Count  [2]uint8
}

// Attackers collects every piece of either side which attacks pos. The
// piece standing on pos itself is ignored. An off-board pos has no
// attackers.
func (b *Board) Attackers(pos position.Pos) AttackInfo {
	var info AttackInfo
	if pos.IsOffBoard() {
		return info
	}
	b.findPieceByStep(&info, pos, PieceRook, dirRook, true)
	b.findPieceByStep(&info, pos, PieceBishop, dirBishop, true)
	b.findPieceByStep(&info, pos, PieceQueen, dirQueen, true)
	b.findPieceByStep(&info, pos, PieceKnight, dirKnight, false)
	b.findPieceByStep(&info, pos, PieceKing, dirQueen, false)

	// Pawns attack forward diagonally, so look behind pos from their side.
	b.findPawn(&info, pos+17, SideBlack)
	b.findPawn(&info, pos+15, SideBlack)
	b.findPawn(&info, pos-17, SideWhite)
	b.findPawn(&info, pos-15, SideWhite)
	return info
}

func (b *Board) findPieceByStep(info *AttackInfo, start position.Pos, p Piece, dirs []position.Offset, multi bool) {
	for _, d := range dirs {
		pos := start
		for {
			pos = pos.Step(d)
			if pos.IsOffBoard() {
				break
			}
			cp := b.Get(pos)
			if !cp.IsEmpty() {
				if cp.Piece() == p {
					info.Weight[cp.Side()] += p.Weight()
					info.Count[cp.Side()]++
				}
				break
			}
			if !multi {
				break
			}
		}
	}
}

func (b *Board) findPawn(info *AttackInfo, pos position.Pos, s Side) {
	if pos.IsOffBoard() {
		return
	}
	if cp := b.Get(pos); cp.Piece() == PiecePawn && cp.Side() == s {
		info.Weight[s] += PiecePawn.Weight()
		info.Count[s]++
	}
}

// AttackWeight returns the summed weight of the pieces of side s attacking
// pos.
func (b *Board) AttackWeight(pos position.Pos, s Side) uint8 {
	return b.Attackers(pos).Weight[s]
}

// AttackCount returns the number of pieces of side s attacking pos.
func (b *Board) AttackCount(pos position.Pos, s Side) uint8 {
	return b.Attackers(pos).Count[s]
}

// IsKingChecked reports whether the King of side s is attacked. A missing
// King is never checked.
func (b *Board) IsKingChecked(s Side) bool {
	king := b.KingPos(s)
	if king == position.Invalid {
		return false
	}
	return b.AttackCount(king, s.Opposite()) > 0
}
