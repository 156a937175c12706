package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/daystram/rook/bench"
	"github.com/daystram/rook/board"
	"github.com/daystram/rook/engine"
)

var (
	EngineName   = "Rook"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		depth:         engine.DefaultDepth,
		parallel:      true,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	depth         uint8
	parallel      bool
	parallelPerft bool
}

type Interface struct {
	in  io.Reader
	out io.Writer
	mu  sync.Mutex

	board   *board.Board
	engine  *engine.Engine
	options options

	engineRunning bool
	engineCancel  context.CancelFunc
	engineDone    sync.WaitGroup
}

func NewInterface(in io.Reader, out io.Writer) *Interface {
	return &Interface{
		in:      in,
		out:     out,
		options: defaultOptions,
	}
}

// Run reads commands until quit or the end of input. A search still running
// at the end of input is waited for, quit cancels it.
func (i *Interface) Run() error {
	ctx := context.Background()
	if err := i.reset(ctx); err != nil {
		return err
	}

	reader := bufio.NewReader(i.in)
	for {
		cmd, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || cmd == "") {
			i.engineDone.Wait()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		cmd = strings.TrimSpace(cmd)

		switch args := strings.Fields(cmd); {
		case len(args) == 0:
		case args[0] == "uci":
			i.commandUCI(ctx)
		case args[0] == "ucinewgame":
			if err := i.reset(ctx); err != nil {
				return err
			}
		case args[0] == "isready":
			i.commandReady(ctx)
		case args[0] == "setoption":
			i.commandSetOption(ctx, args[1:])
		case args[0] == "position":
			i.commandPosition(ctx, args[1:])
		case args[0] == "d":
			i.commandDraw(ctx)
		case args[0] == "go":
			i.commandGo(ctx, args[1:])
		case args[0] == "stop":
			i.commandStop(ctx)
		case args[0] == "quit":
			i.commandStop(ctx)
			i.engineDone.Wait()
			return nil
		}
	}
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name Depth type spin default %d min 1 max %d", defaultOptions.depth, engine.MaxDepth))
	i.println(fmt.Sprintf("option name Parallel type check default %v", defaultOptions.parallel))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.board != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
	case "depth":
		value, err := strconv.ParseUint(valueStr, 10, 8)
		if err != nil || value < 1 || value > uint64(engine.MaxDepth) {
			return
		}
		i.options.depth = uint8(value)
	case "parallel":
		value, err := strconv.ParseBool(valueStr)
		if err != nil || i.isRunning() {
			return
		}
		i.options.parallel = value
		i.options.parallelPerft = value
		i.engine, _ = i.newEngine()
	}
}

// commandPosition sets up a position, then plays the moves following the
// "moves" token. The position is left untouched if anything is invalid.
func (i *Interface) commandPosition(ctx context.Context, args []string) {
	if i.isRunning() || len(args) == 0 {
		return
	}

	var fen string
	var moves []string
	for j, arg := range args {
		if arg == "moves" {
			moves = args[j+1:]
			args = args[:j]
			break
		}
	}
	switch args[0] {
	case "fen":
		fen = strings.Join(args[1:], " ")
	case "startpos":
		fen = board.DefaultStartingPositionFEN
	default:
		return
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		i.debugf("invalid position: %v", err)
		return
	}
	for _, uci := range moves {
		mv, err := board.NewMoveFromUCI(uci)
		if err == nil {
			err = i.engine.ManualMove(ctx, b, mv)
		}
		if err != nil {
			i.debugf("invalid move %s: %v", uci, err)
			return
		}
	}
	i.board = b
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Dump())
	i.println(fmt.Sprintf("fen:  %s", i.board.FEN()))
	i.println(i.board.DebugString())
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	if i.isRunning() {
		return
	}

	depth, limit := i.options.depth, time.Duration(0)
	for j := 0; j+1 < len(args); j += 2 {
		switch args[j] {
		case "perft":
			d, err := strconv.Atoi(args[j+1])
			if err != nil || d < 0 {
				return
			}
			i.runPerft(d)
			return
		case "depth":
			d, err := strconv.ParseUint(args[j+1], 10, 8)
			if err != nil || d < 1 {
				return
			}
			depth = uint8(d)
			if depth > engine.MaxDepth {
				depth = engine.MaxDepth
			}
		case "movetime":
			ms, err := strconv.ParseUint(args[j+1], 10, 32)
			if err != nil {
				return
			}
			depth, limit = engine.MaxDepth, time.Duration(ms)*time.Millisecond
		}
	}
	if len(args) == 1 && args[0] == "infinite" {
		depth = engine.MaxDepth
	}

	var engineCtx context.Context
	var engineCancel context.CancelFunc
	if limit > 0 {
		engineCtx, engineCancel = context.WithTimeout(ctx, limit)
	} else {
		engineCtx, engineCancel = context.WithCancel(ctx)
	}
	i.setRunning(true, engineCancel)
	i.engineDone.Add(1)

	b := i.board.Clone()
	go func() {
		defer i.engineDone.Done()
		defer engineCancel()

		bestMove, err := i.searchDeepening(engineCtx, b, depth)
		if err != nil {
			i.debugf("search failed: %v", err)
		}
		i.println(fmt.Sprintf("bestmove %s", bestMove.UCI()))
		i.setRunning(false, nil)
	}()
}

// searchDeepening searches depth 1 up to depth and keeps the last completed
// result, so a search cut short still yields a move.
func (i *Interface) searchDeepening(ctx context.Context, b *board.Board, depth uint8) (board.Move, error) {
	bestMove := board.NullMove
	for d := uint8(1); d <= depth; d++ {
		res, err := i.engine.Search(ctx, b, &engine.SearchConfig{
			Depth: d,
			Debug: i.options.debug,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return bestMove, nil
			}
			return bestMove, err
		}
		bestMove = res.Move
		if res.Eval == engine.EvalMax {
			break
		}
	}
	return bestMove, nil
}

func (i *Interface) runPerft(depth int) {
	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()

	_ = bench.Perft(depth, i.board.FEN(), i.options.parallelPerft, true, out)
	close(out)
	<-done
}

func (i *Interface) commandStop(_ context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.engineRunning {
		i.engineCancel()
	}
}

func (i *Interface) reset(ctx context.Context) error {
	i.commandStop(ctx)
	i.engineDone.Wait()

	e, err := i.newEngine()
	if err != nil {
		return err
	}
	i.engine = e
	i.commandPosition(ctx, []string{"startpos"})
	return nil
}

func (i *Interface) newEngine() (*engine.Engine, error) {
	return engine.NewEngine(&engine.EngineConfig{
		DefaultDepth: i.options.depth,
		Parallel:     i.options.parallel,
		Logger:       i.println,
	})
}

func (i *Interface) isRunning() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engineRunning
}

func (i *Interface) setRunning(running bool, cancel context.CancelFunc) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.engineRunning, i.engineCancel = running, cancel
}

func (i *Interface) debugf(format string, a ...any) {
	if i.options.debug {
		i.println(fmt.Sprintf("info string "+format, a...))
	}
}

func (i *Interface) println(a ...any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, _ = fmt.Fprintln(i.out, a...)
}
