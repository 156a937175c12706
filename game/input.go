package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

var ErrUnknownCommand = errors.New("unknown command")

type Action uint8

const (
	ActionMove Action = iota
	// ActionSelect marks the targets of a piece.
	ActionSelect
	// ActionHint marks every piece that can move.
	ActionHint
	ActionUndo
	ActionNew
	ActionQuit
)

// Command is one user request. Move is set for ActionMove, From for
// ActionSelect.
type Command struct {
	Action Action
	Move   board.Move
	From   position.Pos
}

// InputSource yields the user's commands. It returns io.EOF once no more
// input will come.
type InputSource interface {
	UserInput(ctx context.Context, b *board.Board) (Command, error)
}

// LineInput reads one command per line: a move such as "e2e4", a square to
// select such as "e2", an empty line for a hint, "undo", "new" or "quit".
type LineInput struct {
	scanner *bufio.Scanner
}

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{scanner: bufio.NewScanner(r)}
}

func (l *LineInput) UserInput(ctx context.Context, _ *board.Board) (Command, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, err
	}
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return Command{}, err
		}
		return Command{}, io.EOF
	}
	return ParseCommand(l.scanner.Text())
}

func ParseCommand(line string) (Command, error) {
	switch line = strings.ToLower(strings.TrimSpace(line)); line {
	case "":
		return Command{Action: ActionHint}, nil
	case "undo", "u":
		return Command{Action: ActionUndo}, nil
	case "new", "n":
		return Command{Action: ActionNew}, nil
	case "quit", "q":
		return Command{Action: ActionQuit}, nil
	}

	if len(line) == 2 {
		pos, err := position.NewPosFromNotation(line)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
		}
		return Command{Action: ActionSelect, From: pos}, nil
	}
	mv, err := board.NewMoveFromUCI(line)
	if err != nil {
		return Command{}, err
	}
	return Command{Action: ActionMove, Move: mv}, nil
}
