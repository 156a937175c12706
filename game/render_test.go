package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/daystram/rook/board"
)

func TestTerminalRenderer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fen     string
		noColor bool
		want    []string
	}{
		{
			name:    "start",
			fen:     board.DefaultStartingPositionFEN,
			noColor: true,
			want: []string{
				" 8  ♜  ♞  ♝  ♛  ♚  ♝  ♞  ♜ \n",
				" 1  ♖  ♘  ♗  ♕  ♔  ♗  ♘  ♖ \n",
				"    a  b  c  d  e  f  g  h \n",
				"White to move, move 1\n",
			},
		},
		{
			name:    "later move",
			fen:     "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
			noColor: true,
			want:    []string{"White to move, move 3\n"},
		},
		{
			name: "colored",
			fen:  board.DefaultStartingPositionFEN,
			want: []string{"\x1b["},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := board.NewBoard(board.WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			var out bytes.Buffer
			if err := NewTerminalRenderer(&out, tt.noColor).DrawBoard(b); err != nil {
				t.Fatal("unexpected error:", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("missing output: want=%q got=%q", want, out.String())
				}
			}
		})
	}
}

func TestTerminalRendererOutcome(t *testing.T) {
	t.Parallel()
	b, _ := board.NewBoard()
	b.SetOutcome(board.OutcomeDraw)

	var out bytes.Buffer
	if err := NewTerminalRenderer(&out, true).DrawBoard(b); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if want := "Stalemate\n"; !strings.HasSuffix(out.String(), want) {
		t.Errorf("unexpected status: got=%q want suffix %q", out.String(), want)
	}
}
