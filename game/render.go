package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

// Renderer draws the board between moves.
type Renderer interface {
	DrawBoard(b *board.Board) error
}

// TerminalRenderer draws the board with unicode pieces on a colored grid.
// Marked cells are highlighted, and wrapped in brackets when colors are
// disabled.
type TerminalRenderer struct {
	w io.Writer

	light, dark, marked, label *color.Color
}

func NewTerminalRenderer(w io.Writer, noColor bool) *TerminalRenderer {
	r := &TerminalRenderer{
		w:      w,
		light:  color.New(color.FgBlack, color.BgHiWhite),
		dark:   color.New(color.FgBlack, color.BgGreen),
		marked: color.New(color.FgBlack, color.BgYellow),
		label:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.light, r.dark, r.marked, r.label} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return r
}

func (r *TerminalRenderer) DrawBoard(b *board.Board) error {
	builder := strings.Builder{}
	for y := board.Height; y > 0; y-- {
		_, _ = builder.WriteString(r.label.Sprintf(" %d ", y))
		for x := position.Pos(0); x < board.Width; x++ {
			cp := b.Get(position.NewPos(x, y-1))
			sym := cp.Piece().SymbolUnicode(cp.Side(), false)
			if cp.IsEmpty() {
				sym = " "
			}

			switch {
			case cp.IsMarked():
				_, _ = builder.WriteString(r.marked.Sprintf("[%s]", sym))
			case (x+y)%2 == 0:
				_, _ = builder.WriteString(r.light.Sprintf(" %s ", sym))
			default:
				_, _ = builder.WriteString(r.dark.Sprintf(" %s ", sym))
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < board.Width; x++ {
		_, _ = builder.WriteString(r.label.Sprintf(" %s ", x.NotationComponentX()))
	}
	_, _ = builder.WriteString("\n")

	if o := b.Outcome(); o.IsEnded() {
		_, _ = builder.WriteString(fmt.Sprintf("%s\n", o))
	} else {
		_, _ = builder.WriteString(fmt.Sprintf("%s to move, move %d\n", b.Turn(), b.FullMoveClock()))
	}

	_, err := io.WriteString(r.w, builder.String())
	return err
}
