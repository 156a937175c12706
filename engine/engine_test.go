package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

func silentLogger(...any) {}

func newTestEngine(t *testing.T, parallel bool) *Engine {
	t.Helper()
	e, err := NewEngine(&EngineConfig{Parallel: parallel, Logger: silentLogger})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return e
}

func mustBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func mustMove(t *testing.T, uci string) board.Move {
	t.Helper()
	m, err := board.NewMoveFromUCI(uci)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return m
}

func TestNewEngine(t *testing.T) {
	t.Parallel()
	if _, err := NewEngine(&EngineConfig{DefaultDepth: MaxDepth + 1}); !errors.Is(err, ErrInvalidMaxDepth) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidMaxDepth)
	}
	e, err := NewEngine(&EngineConfig{})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if e.defaultDepth != DefaultDepth {
		t.Errorf("unexpected default depth: got=%d want=%d", e.defaultDepth, DefaultDepth)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		depth uint8
		want  string
	}{
		{name: "free queen", fen: "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", depth: 1, want: "d1d5"},
		{name: "free queen deeper", fen: "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1", depth: 2, want: "d1d5"},
		{name: "back rank mate", fen: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", depth: 2, want: "a1a8"},
		{name: "black takes rook", fen: "3rk3/8/8/8/8/8/8/3RK3 b - - 0 1", depth: 1, want: "d8d1"},
	}

	for _, tt := range tests {
		tt := tt
		for _, parallel := range []bool{false, true} {
			parallel := parallel
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				b := mustBoard(t, tt.fen)
				res, err := newTestEngine(t, parallel).Search(context.Background(), b, &SearchConfig{Depth: tt.depth})
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if got := res.Move.UCI(); got != tt.want {
					t.Errorf("unexpected best move (parallel=%v): got=%s want=%s", parallel, got, tt.want)
				}
				if got := b.FEN(); got != tt.fen {
					t.Errorf("search changed the board: got=%s want=%s", got, tt.fen)
				}
			})
		}
	}
}

func TestSearchMate(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res, err := newTestEngine(t, false).Search(context.Background(), b, &SearchConfig{Depth: 2})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if res.Eval != EvalMax {
		t.Errorf("unexpected eval: got=%d want=%d", res.Eval, EvalMax)
	}
}

func TestSearchDeterministic(t *testing.T) {
	t.Parallel()
	fens := []string{
		board.DefaultStartingPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	}

	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()

			var results []Result
			for _, parallel := range []bool{false, false, true} {
				res, err := newTestEngine(t, parallel).Search(context.Background(), mustBoard(t, fen), &SearchConfig{Depth: 2})
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				results = append(results, res)
			}
			for _, res := range results[1:] {
				if !res.Move.Equals(results[0].Move) || res.Eval != results[0].Eval || res.Nodes != results[0].Nodes {
					t.Errorf("unexpected result: got=%s/%d/%d want=%s/%d/%d",
						res.Move, res.Eval, res.Nodes, results[0].Move, results[0].Eval, results[0].Nodes)
				}
			}
		})
	}
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, false)

	b, _ := board.NewBoard()
	if _, err := e.Search(context.Background(), b, &SearchConfig{Depth: MaxDepth + 1}); !errors.Is(err, ErrInvalidMaxDepth) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidMaxDepth)
	}

	mated := mustBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if _, err := e.Search(context.Background(), mated, &SearchConfig{Depth: 1}); !errors.Is(err, ErrNoLegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrNoLegalMove)
	}
}

func TestSearchCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		b, _ := board.NewBoard()
		_, err := newTestEngine(t, parallel).Search(ctx, b, &SearchConfig{Depth: MaxDepth})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error (parallel=%v): got=%v want=%v", parallel, err, context.Canceled)
		}
		if got := b.FEN(); got != board.DefaultStartingPositionFEN {
			t.Errorf("cancelled search changed the board: got=%s", got)
		}
		if got := b.HistoryLen(); got != 0 {
			t.Errorf("cancelled search left history: got=%d want=%d", got, 0)
		}
	}
}

func TestThinking(t *testing.T) {
	t.Parallel()
	var calls int
	var rootPieces []position.Pos
	e, err := NewEngine(&EngineConfig{
		Logger: silentLogger,
		Thinking: func(depth uint8, pos position.Pos, cp board.ColoredPiece) {
			calls++
			if depth == 0 {
				rootPieces = append(rootPieces, pos)
			}
		},
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	b, _ := board.NewBoard()
	if _, err := e.Search(context.Background(), b, &SearchConfig{Depth: 1}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if len(rootPieces) != 16 {
		t.Errorf("unexpected root pieces visited: got=%d want=%d", len(rootPieces), 16)
	}
	if calls <= 16 {
		t.Errorf("thinking not called below the root: got=%d", calls)
	}
}

func TestManualMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  board.Outcome
	}{
		{
			name:  "fool's mate",
			fen:   board.DefaultStartingPositionFEN,
			moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			want:  board.OutcomeWhiteLost,
		},
		{
			name:  "back rank mate",
			fen:   "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			moves: []string{"a1a8"},
			want:  board.OutcomeBlackLost,
		},
		{
			name:  "stalemate",
			fen:   "7k/4Q3/6K1/8/8/8/8/8 w - - 0 1",
			moves: []string{"e7f7"},
			want:  board.OutcomeDraw,
		},
		{
			name:  "running",
			fen:   board.DefaultStartingPositionFEN,
			moves: []string{"e2e4", "e7e5"},
			want:  board.OutcomeNone,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEngine(t, false)
			b := mustBoard(t, tt.fen)
			for _, mv := range tt.moves {
				if err := e.ManualMove(context.Background(), b, mustMove(t, mv)); err != nil {
					t.Fatal("unexpected error:", err)
				}
			}
			if got := b.Outcome(); got != tt.want {
				t.Errorf("unexpected outcome: got=%s want=%s", got, tt.want)
			}
		})
	}
}

func TestManualMoveErrors(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, false)
	b, _ := board.NewBoard()

	if err := e.ManualMove(context.Background(), b, mustMove(t, "e2e5")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrIllegalMove)
	}
	if err := e.ManualMove(context.Background(), b, mustMove(t, "e7e5")); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrIllegalMove)
	}

	b = mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err := e.ManualMove(context.Background(), b, mustMove(t, "a1a8")); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if err := e.ManualMove(context.Background(), b, mustMove(t, "g8h8")); !errors.Is(err, ErrGameEnded) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameEnded)
	}
	if _, err := e.ComputerMove(context.Background(), b, nil); !errors.Is(err, ErrGameEnded) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameEnded)
	}
}

func TestComputerMoveAndUndo(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, false)
	b, _ := board.NewBoard()

	if e.Undo(b) {
		t.Error("undo allowed at the start")
	}
	if err := e.ManualMove(context.Background(), b, mustMove(t, "e2e4")); err != nil {
		t.Fatal("unexpected error:", err)
	}
	mv, err := e.ComputerMove(context.Background(), b, &SearchConfig{Depth: 2})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if b.Get(mv.To).Side() != board.SideBlack {
		t.Errorf("computer did not move a black piece: got=%s", mv)
	}
	if got := b.Ply(); got != 2 {
		t.Errorf("unexpected ply: got=%d want=%d", got, 2)
	}

	if !e.Undo(b) {
		t.Fatal("undo refused")
	}
	if got := b.FEN(); got != board.DefaultStartingPositionFEN {
		t.Errorf("unexpected FEN after undo: got=%s want=%s", got, board.DefaultStartingPositionFEN)
	}
}

func TestComputerMoveMates(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, true)
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	mv, err := e.ComputerMove(context.Background(), b, &SearchConfig{Depth: 2})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := mv.UCI(); got != "a1a8" {
		t.Errorf("unexpected move: got=%s want=%s", got, "a1a8")
	}
	if got := b.Outcome(); got != board.OutcomeBlackLost {
		t.Errorf("unexpected outcome: got=%s want=%s", got, board.OutcomeBlackLost)
	}
}

func TestThinkingParallel(t *testing.T) {
	t.Parallel()
	var calls int64
	e, err := NewEngine(&EngineConfig{
		Parallel: true,
		Logger:   silentLogger,
		Thinking: func(uint8, position.Pos, board.ColoredPiece) {
			atomic.AddInt64(&calls, 1)
		},
	})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	b, _ := board.NewBoard()
	if _, err := e.Search(context.Background(), b, &SearchConfig{Depth: 1}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := atomic.LoadInt64(&calls); got == 0 {
		t.Error("thinking not called in parallel mode")
	}
}

func TestComputerMoveIntoMate(t *testing.T) {
	t.Parallel()
	const fen = "k7/8/1K6/8/8/8/8/7R b - - 0 1"

	for _, parallel := range []bool{false, true} {
		e := newTestEngine(t, parallel)
		b := mustBoard(t, fen)
		mv, err := e.ComputerMove(context.Background(), b, &SearchConfig{Depth: 3})
		if err != nil {
			t.Fatalf("unexpected error (parallel=%v): %v", parallel, err)
		}
		if got := mv.UCI(); got != "a8b8" {
			t.Errorf("unexpected move (parallel=%v): got=%s want=%s", parallel, got, "a8b8")
		}
		if got := b.Outcome(); got != board.OutcomeNone {
			t.Errorf("unexpected outcome (parallel=%v): got=%s want=%s", parallel, got, board.OutcomeNone)
		}
		if want := "1k6/8/1K6/8/8/8/8/7R w - - 1 2"; b.FEN() != want {
			t.Errorf("unexpected FEN (parallel=%v): got=%s want=%s", parallel, b.FEN(), want)
		}
	}
}
