package engine

import (
	"context"
	"sync"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

type rootResult struct {
	eval  int16
	nodes uint32
	err   error
}

// searchParallel gives every root move its own board copy and engine. The
// results are reduced in generation order so the chosen move is the same as
// the sequential search would pick. The thinking hook is shared by all
// goroutines.
func (e *Engine) searchParallel(ctx context.Context, b *board.Board, depth uint8) (Result, error) {
	s := b.Turn()
	moves := b.PseudoLegalMoves(s)
	results := make([]rootResult, len(moves))

	wg := sync.WaitGroup{}
	for i, mv := range moves {
		wg.Add(1)
		go func(i int, mv board.Move) {
			defer wg.Done()
			child := &Engine{logger: e.logger, thinking: e.thinking}
			bb := b.Clone()
			bb.Apply(mv.From, mv.To)
			eval, nodes, err := child.scoreAfter(ctx, bb, s, depth)
			results[i] = rootResult{eval: eval, nodes: nodes + 1, err: err}
		}(i, mv)
	}
	wg.Wait()

	res := Result{
		Move: board.Move{From: position.Invalid, To: position.Invalid},
		Eval: EvalMin,
	}
	for i, r := range results {
		if r.err != nil {
			return Result{}, r.err
		}
		res.Nodes += r.nodes
		if r.eval > res.Eval {
			res.Move, res.Eval = moves[i], r.eval
		}
	}
	return res, nil
}

// scoreAfter scores b, on which side s has just moved, exactly as the root
// frame of a sequential search would.
func (e *Engine) scoreAfter(ctx context.Context, b *board.Board, s board.Side, maxDepth uint8) (int16, uint32, error) {
	e.b, e.ctx, e.err = b, ctx, nil
	e.maxDepth, e.mode = maxDepth, checkModeNone
	e.nodes = 0
	e.depth = 0
	e.initFrame(s)
	eval := e.descend(s)
	e.b, e.ctx = nil, nil
	return eval, e.nodes, e.err
}
