package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/rook/board"
)

// Counters holds the leaf statistics of a perft run.
type Counters struct {
	Nodes, Cap, Enp, Cas, Pro, Chk uint64
}

func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	var c Counters
	start := time.Now()
	run(b, depth, true, verbose, out, &c)
	end := time.Now()

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, c.Nodes, int(float64(c.Nodes)/end.Sub(start).Seconds()), c.Cap, c.Enp, c.Cas, c.Pro, c.Chk, end.Sub(start).Seconds())

	return nil
}

type perftFunc func(b *board.Board, d int, root, verbose bool, out chan string, c *Counters) uint64

func runPerft(b *board.Board, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		c.Nodes++
		return 1
	}

	var sum uint64
	for _, mv := range b.LegalMoves(b.Turn()) {
		var child uint64
		if d != 1 {
			bb := b.Clone()
			bb.Apply(mv.From, mv.To)
			bb.IncrementPly()
			child = runPerft(bb, d-1, false, verbose, out, c)
		} else {
			child = 1
			leaf := classify(b, mv)
			c.Nodes++
			c.Cap += leaf.Cap
			c.Enp += leaf.Enp
			c.Cas += leaf.Cas
			c.Pro += leaf.Pro
			c.Chk += leaf.Chk
		}
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		atomic.AddUint64(&c.Nodes, 1)
		return 1
	}

	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.LegalMoves(b.Turn()) {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			var child uint64
			if d != 1 {
				bb := b.Clone()
				bb.Apply(mv.From, mv.To)
				bb.IncrementPly()
				child = runPerftParallel(bb, d-1, false, verbose, out, c)
			} else {
				child = 1
				leaf := classify(b.Clone(), mv)
				atomic.AddUint64(&c.Nodes, 1)
				atomic.AddUint64(&c.Cap, leaf.Cap)
				atomic.AddUint64(&c.Enp, leaf.Enp)
				atomic.AddUint64(&c.Cas, leaf.Cas)
				atomic.AddUint64(&c.Pro, leaf.Pro)
				atomic.AddUint64(&c.Chk, leaf.Chk)
			}
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}

// classify counts what kind of move mv is. b is restored before returning.
func classify(b *board.Board, mv board.Move) Counters {
	var c Counters
	cp, target := b.Get(mv.From), b.Get(mv.To)
	s := cp.Side()
	isPawn := cp.Piece() == board.PiecePawn

	switch {
	case !target.IsEmpty():
		c.Cap = 1
	case isPawn && mv.From.X() != mv.To.X():
		c.Cap, c.Enp = 1, 1
	}
	if cp.Piece() == board.PieceKing && (mv.To-mv.From == 2 || mv.From-mv.To == 2) {
		c.Cas = 1
	}
	if isPawn && (mv.To.Y() == 0 || mv.To.Y() == board.Height-1) {
		c.Pro = 1
	}

	b.Apply(mv.From, mv.To)
	if b.IsKingChecked(s.Opposite()) {
		c.Chk = 1
	}
	b.UndoHalfMove()
	return c
}
