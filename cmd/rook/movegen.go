package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/rook/board"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.DebugString())
	dumpMoves(b)

	if draw {
		for _, mv := range b.LegalMoves(b.Turn()) {
			b.Apply(mv.From, mv.To)
			b.IncrementPly()
			fmt.Println(mv)
			fmt.Println(b.Dump())
			fmt.Println(b.FEN())
			b.UndoHalfMove()
			b.DecrementPly()
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	pseudo := b.PseudoLegalMoves(b.Turn())
	i := 0
	for _, mv := range pseudo {
		if !b.IsLegalMove(mv) {
			continue
		}
		i++
		cp, target := b.Get(mv.From), b.Get(mv.To)
		b.Apply(mv.From, mv.To)
		hm, _ := b.LastHalfMove()
		b.UndoHalfMove()
		fmt.Printf("option %*d: [%s] [%s] %s %s => %s (cap=%v)\n",
			len(strconv.Itoa(len(pseudo))), i, mv.UCI(), hm, cp.Side(), cp.Piece().Name(), mv.To, !target.IsEmpty())
	}
}
