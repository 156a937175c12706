package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/daystram/rook/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth in perft mode")
	perftParallel = flag.Bool("perft.parallel", true, "run perft in parallel")

	searchRun   = flag.Bool("search", false, "run search mode")
	searchSteps = flag.Int("search.steps", 50, "full moves to play in search mode")
	searchDepth = flag.Uint("search.depth", 0, "search depth in search mode")

	playRun      = flag.Bool("play", false, "play against the engine in the terminal")
	playBlack    = flag.Bool("play.black", false, "play the black pieces")
	playDepth    = flag.Uint("play.depth", 0, "search depth of the engine")
	playNoColor  = flag.Bool("play.nocolor", false, "draw the board without colors")
	playParallel = flag.Bool("play.parallel", true, "search root moves in parallel")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	if *movegenRun {
		return movegen(fen, *movegenDraw)
	}
	if *perftRun {
		return perft(*perftDepth, fen, *perftParallel)
	}
	if *searchRun {
		return search(fen, *searchSteps, uint8(*searchDepth))
	}
	if *playRun {
		side := board.SideWhite
		if *playBlack {
			side = board.SideBlack
		}
		return play(fen, side, uint8(*playDepth), *playParallel, *playNoColor)
	}

	return runUCI()
}
