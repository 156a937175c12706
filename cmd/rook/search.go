package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/engine"
)

// search lets the engine play the side to move against random moves.
func search(fen string, steps int, depth uint8) error {
	rand.Seed(time.Now().Unix())
	ctx := context.Background()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	e, err := engine.NewEngine(&engine.EngineConfig{
		DefaultDepth: depth,
		Parallel:     true,
	})
	if err != nil {
		return err
	}
	fmt.Println(b.Dump())
	fmt.Println(b.FEN())
	fmt.Println(b.DebugString())

	playingSide := b.Turn()
	var history []string
	for step := 0; step < steps*2 && !b.IsGameEnd(); step++ {
		if b.Turn() == playingSide {
			fmt.Printf("\n=============== Move %d\n", b.FullMoveClock())
			if _, err := e.ComputerMove(ctx, b, &engine.SearchConfig{Debug: true}); err != nil {
				return err
			}
		} else {
			mvs := b.LegalMoves(b.Turn())
			if len(mvs) == 0 {
				return fmt.Errorf("unexpected move exhaustion: outcome=%s", b.Outcome())
			}
			if err := e.ManualMove(ctx, b, mvs[rand.Intn(len(mvs))]); err != nil {
				return err
			}
		}

		hm, _ := b.LastHalfMove()
		history = append(history, hm.String())
		fmt.Printf("\n>>> %s: %s\n", b.Turn().Opposite(), hm)
		fmt.Println(b.FEN())
		fmt.Println(b.Dump())
	}
	log.Println("=============== game ended:", b.Outcome())
	fmt.Println(b.FEN())
	dumpHistory(history, playingSide)

	return nil
}

func dumpHistory(hms []string, first board.Side) {
	offset := 0
	if first == board.SideBlack {
		offset = 1
		fmt.Print("1... ")
	}
	for i, hm := range hms {
		if (i+offset)%2 == 0 {
			fmt.Printf("%d.", (i+offset)/2+1)
		}
		fmt.Printf("%s ", hm)
	}
	fmt.Println()
}
