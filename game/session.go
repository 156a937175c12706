package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/engine"
)

type SessionConfig struct {
	// FEN is the position a new game starts from. Empty means the standard
	// starting position.
	FEN string

	// UserSide is the side played through Input, the engine plays the other.
	UserSide board.Side

	Depth    uint8
	Parallel bool

	Renderer Renderer
	Input    InputSource
	Out      io.Writer

	// Logger receives the engine's search statistics.
	Logger func(...any)
}

// Session plays one user against the engine, drawing the board after every
// change.
type Session struct {
	fen      string
	userSide board.Side
	depth    uint8

	board    *board.Board
	engine   *engine.Engine
	renderer Renderer
	input    InputSource
	out      io.Writer
}

func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg.FEN == "" {
		cfg.FEN = board.DefaultStartingPositionFEN
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Renderer == nil {
		cfg.Renderer = NewTerminalRenderer(cfg.Out, false)
	}
	if cfg.Logger == nil {
		cfg.Logger = func(...any) {}
	}
	if cfg.Input == nil {
		return nil, errors.New("missing input source")
	}

	b, err := board.NewBoard(board.WithFEN(cfg.FEN))
	if err != nil {
		return nil, err
	}
	e, err := engine.NewEngine(&engine.EngineConfig{
		DefaultDepth: cfg.Depth,
		Parallel:     cfg.Parallel,
		Logger:       cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		fen:      cfg.FEN,
		userSide: cfg.UserSide,
		depth:    cfg.Depth,
		board:    b,
		engine:   e,
		renderer: cfg.Renderer,
		input:    cfg.Input,
		out:      cfg.Out,
	}, nil
}

func (s *Session) Board() *board.Board {
	return s.board
}

// Run alternates between the engine and the user until the user quits or
// the input runs out. A finished game stays on the board until it is undone
// or a new one is started.
func (s *Session) Run(ctx context.Context) error {
	if err := s.renderer.DrawBoard(s.board); err != nil {
		return err
	}

	for {
		if !s.board.IsGameEnd() && s.board.Turn() != s.userSide {
			mv, err := s.engine.ComputerMove(ctx, s.board, &engine.SearchConfig{Depth: s.depth})
			if err != nil {
				return err
			}
			s.printf("%s plays %s\n", s.board.Turn().Opposite(), mv)
			if err := s.renderer.DrawBoard(s.board); err != nil {
				return err
			}
			continue
		}

		cmd, err := s.input.UserInput(ctx, s.board)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return err
			}
			s.printf("%v\n", err)
			continue
		}

		switch cmd.Action {
		case ActionMove:
			if err := s.engine.ManualMove(ctx, s.board, cmd.Move); err != nil {
				if errors.Is(err, engine.ErrIllegalMove) || errors.Is(err, engine.ErrGameEnded) {
					s.printf("%v\n", err)
					continue
				}
				return err
			}
		case ActionSelect:
			if err := s.engine.MarkTargetMoves(ctx, s.board, cmd.From); err != nil {
				return err
			}
		case ActionHint:
			if err := s.engine.MarkMovable(ctx, s.board); err != nil {
				return err
			}
		case ActionUndo:
			if !s.engine.Undo(s.board) {
				s.printf("nothing to undo\n")
				continue
			}
		case ActionNew:
			b, err := board.NewBoard(board.WithFEN(s.fen))
			if err != nil {
				return err
			}
			s.board = b
		case ActionQuit:
			return nil
		}

		if err := s.renderer.DrawBoard(s.board); err != nil {
			return err
		}
	}
}

func (s *Session) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
