package main

import (
	"os"

	"github.com/daystram/rook/uci"
)

func runUCI() error {
	return uci.NewInterface(os.Stdin, os.Stdout).Run()
}
