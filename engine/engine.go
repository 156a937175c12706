package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

const (
	// MaxDepth is the deepest search the frame arena can hold. A search of
	// depth d looks d+1 plies ahead.
	MaxDepth uint8 = board.MaxStackSize - 1

	DefaultDepth uint8 = 3
)

var (
	ErrInvalidMaxDepth = errors.New("invalid max depth")
	ErrNoLegalMove     = errors.New("no legal move")
	ErrGameEnded       = errors.New("game has ended")
	ErrIllegalMove     = errors.New("illegal move")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

// ThinkingFunc is called for every own piece a search frame visits. In
// parallel mode it is called from several goroutines at once.
type ThinkingFunc func(depth uint8, pos position.Pos, cp board.ColoredPiece)

func noThinking(uint8, position.Pos, board.ColoredPiece) {}

type EngineConfig struct {
	// DefaultDepth is used when a search does not ask for a depth.
	DefaultDepth uint8

	// Parallel splits the search at the root, one goroutine per root move.
	Parallel bool

	Logger   func(...any)
	Thinking ThinkingFunc
}

type SearchConfig struct {
	Depth uint8
	Debug bool
}

type Result struct {
	Move    board.Move
	Eval    int16
	Depth   uint8
	Nodes   uint32
	Elapsed time.Duration
}

type checkMode uint8

const (
	checkModeNone checkMode = iota
	checkModeMovable
	checkModeTargetMove
)

type frame struct {
	pos  position.Pos
	cp   board.ColoredPiece
	side board.Side

	bestFrom, bestTo position.Pos
	bestEval         int16
}

// Engine searches a board with a fixed arena of frames, one per ply. An
// Engine runs one search at a time, parallel searches use an Engine per
// goroutine.
type Engine struct {
	frames   [board.MaxStackSize]frame
	depth    uint8
	maxDepth uint8

	b     *board.Board
	ctx   context.Context
	err   error
	nodes uint32

	mode     checkMode
	checkSrc position.Pos
	marks    [board.TotalCells]bool

	defaultDepth uint8
	parallel     bool
	logger       func(...any)
	thinking     ThinkingFunc
}

func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}
	if cfg.Thinking == nil {
		cfg.Thinking = noThinking
	}
	if cfg.DefaultDepth == 0 {
		cfg.DefaultDepth = DefaultDepth
	}
	if cfg.DefaultDepth > MaxDepth {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidMaxDepth, cfg.DefaultDepth, MaxDepth)
	}

	return &Engine{
		defaultDepth: cfg.DefaultDepth,
		parallel:     cfg.Parallel,
		logger:       cfg.Logger,
		thinking:     cfg.Thinking,
	}, nil
}

// Search finds the best move for the side to move. Ties keep the move found
// first. The board is left as it was, except that the history is compacted
// to make room for the search.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (Result, error) {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	depth := cfg.Depth
	if depth == 0 {
		depth = e.defaultDepth
	}
	if depth > MaxDepth {
		return Result{}, fmt.Errorf("%w: %d exceeds %d", ErrInvalidMaxDepth, depth, MaxDepth)
	}

	b.ReduceHistoryByFullMove()

	var res Result
	var err error
	startTime := time.Now()
	if e.parallel {
		res, err = e.searchParallel(ctx, b, depth)
	} else {
		err = e.run(ctx, b, b.Turn(), depth, checkModeNone)
		root := e.frames[0]
		res = Result{Move: board.Move{From: root.bestFrom, To: root.bestTo}, Eval: root.bestEval, Nodes: e.nodes}
	}
	res.Depth = depth
	res.Elapsed = time.Since(startTime)
	if err != nil {
		return Result{}, err
	}

	nps := float64(res.Nodes) / max(res.Elapsed, time.Microsecond).Seconds()
	if cfg.Debug {
		e.logger(message.NewPrinter(language.English).
			Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s\n    %s",
				depth, formatScoreDebug(res.Eval), res.Nodes, nps, res.Elapsed, res.Move))
	} else {
		e.logger(fmt.Sprintf("info depth %d score %s time %d nodes %d nps %.0f pv %s",
			depth, formatScoreUCI(res.Eval, depth), res.Elapsed.Milliseconds(), res.Nodes, nps, res.Move.UCI()))
	}

	if res.Move.IsNull() {
		return res, ErrNoLegalMove
	}
	return res, nil
}

// run searches b for side s down to maxDepth. The best move is left in the
// root frame.
func (e *Engine) run(ctx context.Context, b *board.Board, s board.Side, maxDepth uint8, mode checkMode) error {
	e.b, e.ctx, e.err = b, ctx, nil
	e.maxDepth, e.mode = maxDepth, mode
	e.nodes = 0
	e.depth = 0
	e.initFrame(s)
	e.loopPieces()
	e.b, e.ctx = nil, nil
	return e.err
}

func (e *Engine) initFrame(s board.Side) {
	f := &e.frames[e.depth]
	f.side = s
	f.bestFrom, f.bestTo = position.Invalid, position.Invalid
	f.bestEval = EvalMin
}

func (e *Engine) push() {
	s := e.frames[e.depth].side.Opposite()
	e.depth++
	e.initFrame(s)
}

func (e *Engine) pop() {
	e.depth--
}

// loopPieces generates the steps of every piece of the current frame's
// side, in board order.
func (e *Engine) loopPieces() {
	if e.err == nil {
		e.err = e.ctx.Err()
	}
	if e.err != nil {
		return
	}

	f := &e.frames[e.depth]
	f.pos = position.A1
	for {
		f.cp = e.b.Get(f.pos)
		if !f.cp.IsEmpty() && f.cp.Side() == f.side && e.wantsPiece(f.pos) {
			e.thinking(e.depth, f.pos, f.cp)
			if !e.b.GenerateFrom(f.pos, e.step) {
				return
			}
		}
		if f.pos = f.pos.Next(); f.pos == position.A1 {
			return
		}
	}
}

// wantsPiece skips root pieces that cannot affect a target move query.
func (e *Engine) wantsPiece(pos position.Pos) bool {
	return e.depth != 0 || e.mode != checkModeTargetMove || pos == e.checkSrc
}

// step is the recursion callback. It plays from-to, scores it either by
// evaluation or by searching the replies, keeps it if it beats the frame's
// best and takes it back.
func (e *Engine) step(from, to position.Pos) bool {
	if e.err != nil {
		return false
	}
	f := &e.frames[e.depth]
	if e.b.IsIllegalTarget(to, f.side) {
		return true
	}
	e.nodes++

	e.b.Apply(from, to)
	eval := e.descend(f.side)
	e.b.UndoHalfMove()
	if e.err != nil {
		return false
	}

	if eval > f.bestEval {
		f.bestEval, f.bestFrom, f.bestTo = eval, from, to
	}

	// a move scored EvalMin leaves the own King capturable
	if e.depth == 0 && e.mode != checkModeNone && eval != EvalMin {
		switch e.mode {
		case checkModeMovable:
			e.marks[from.Index()] = true
		case checkModeTargetMove:
			if from == e.checkSrc {
				e.marks[to.Index()] = true
			}
		}
	}
	return true
}

// descend scores the board after side s has moved.
func (e *Engine) descend(s board.Side) int16 {
	if e.depth == e.maxDepth {
		return Evaluate(e.b, s)
	}
	e.push()
	e.loopPieces()
	eval := -e.frames[e.depth].bestEval
	e.pop()
	return eval
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

func formatScoreDebug(s int16) string {
	if s == EvalMax {
		return "+inf"
	}
	if s == EvalMin {
		return "-inf"
	}
	pawns := float64(abs(s)) / (1 << materialShift)
	if s > 0 {
		return fmt.Sprintf("+%.3f", pawns)
	}
	if s < 0 {
		return fmt.Sprintf("-%.3f", pawns)
	}
	return "0"
}

// formatScoreUCI reports scores in centipawns. A won or lost position is
// reported as a mate within the searched plies.
func formatScoreUCI(s int16, depth uint8) string {
	moves := (int(depth) + 2) / 2
	if s == EvalMax {
		return fmt.Sprintf("mate %d", moves)
	}
	if s == EvalMin {
		return fmt.Sprintf("mate -%d", moves)
	}
	return fmt.Sprintf("cp %d", int(s)*100>>materialShift)
}
