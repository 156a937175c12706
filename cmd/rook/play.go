package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/game"
)

func play(fen string, side board.Side, depth uint8, parallel, noColor bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("moves: e2e4, select: e2, hint: empty line, undo, new, quit")
	s, err := game.NewSession(&game.SessionConfig{
		FEN:      fen,
		UserSide: side,
		Depth:    depth,
		Parallel: parallel,
		Renderer: game.NewTerminalRenderer(os.Stdout, noColor),
		Input:    game.NewLineInput(os.Stdin),
		Out:      os.Stdout,
	})
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
