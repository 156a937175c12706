package board

import (
	"testing"

	"github.com/daystram/rook/position"
)

func TestAttackers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		pos  position.Pos
		want AttackInfo
	}{
		{
			name: "start f3",
			fen:  DefaultStartingPositionFEN,
			pos:  position.F3,
			want: AttackInfo{Weight: [2]uint8{5, 0}, Count: [2]uint8{3, 0}},
		},
		{
			name: "start f6",
			fen:  DefaultStartingPositionFEN,
			pos:  position.F6,
			want: AttackInfo{Weight: [2]uint8{0, 5}, Count: [2]uint8{0, 3}},
		},
		{
			name: "start e4",
			fen:  DefaultStartingPositionFEN,
			pos:  position.E4,
			want: AttackInfo{},
		},
		{
			name: "off board",
			fen:  DefaultStartingPositionFEN,
			pos:  position.Invalid,
			want: AttackInfo{},
		},
		{
			name: "king weighs nothing",
			fen:  "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			pos:  position.D2,
			want: AttackInfo{Weight: [2]uint8{0, 0}, Count: [2]uint8{1, 0}},
		},
		{
			name: "rook and king",
			fen:  "4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			pos:  position.D1,
			want: AttackInfo{Weight: [2]uint8{5, 0}, Count: [2]uint8{2, 0}},
		},
		{
			name: "slider blocked",
			fen:  "4k3/8/8/8/8/8/N7/R3K3 w - - 0 1",
			pos:  position.A8,
			want: AttackInfo{},
		},
		{
			name: "queen on diagonal",
			fen:  "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1",
			pos:  position.H8,
			want: AttackInfo{Weight: [2]uint8{9, 0}, Count: [2]uint8{1, 0}},
		},
		{
			name: "black pawns",
			fen:  "4k3/8/8/3p1p2/8/8/8/4K3 w - - 0 1",
			pos:  position.E4,
			want: AttackInfo{Weight: [2]uint8{0, 2}, Count: [2]uint8{0, 2}},
		},
		{
			name: "pawn does not attack forward",
			fen:  "4k3/8/8/4p3/8/8/8/4K3 w - - 0 1",
			pos:  position.E4,
			want: AttackInfo{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := mustBoard(t, tt.fen)
			if got := b.Attackers(tt.pos); got != tt.want {
				t.Errorf("unexpected attackers: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestIsKingChecked(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want [2]bool
	}{
		{fen: DefaultStartingPositionFEN, want: [2]bool{false, false}},
		{fen: "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", want: [2]bool{true, false}},
		{fen: "4k3/8/8/1B6/8/8/8/4K3 b - - 0 1", want: [2]bool{false, true}},
		{fen: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", want: [2]bool{true, false}},
	}

	for _, tt := range tests {
		b := mustBoard(t, tt.fen)
		for _, s := range []Side{SideWhite, SideBlack} {
			if got := b.IsKingChecked(s); got != tt.want[s] {
				t.Errorf("unexpected check for %s in %s: got=%v want=%v", s, tt.fen, got, tt.want[s])
			}
		}
	}
}
