package game

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/daystram/rook/board"
	"github.com/daystram/rook/position"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line    string
		want    Command
		wantErr error
	}{
		{line: "e2e4", want: Command{Action: ActionMove, Move: board.Move{From: position.E2, To: position.E4}}},
		{line: " E7E8q ", want: Command{Action: ActionMove, Move: board.Move{From: position.E7, To: position.E8}}},
		{line: "e7e8n", wantErr: board.ErrUnderpromotion},
		{line: "g1", want: Command{Action: ActionSelect, From: position.G1}},
		{line: "", want: Command{Action: ActionHint}},
		{line: "undo", want: Command{Action: ActionUndo}},
		{line: "n", want: Command{Action: ActionNew}},
		{line: "quit", want: Command{Action: ActionQuit}},
		{line: "z9", wantErr: ErrUnknownCommand},
		{line: "e2e9", wantErr: board.ErrInvalidMove},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCommand(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("unexpected command: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestLineInput(t *testing.T) {
	t.Parallel()
	in := NewLineInput(strings.NewReader("e2e4\nundo"))
	b, _ := board.NewBoard()

	want := []Action{ActionMove, ActionUndo}
	for _, w := range want {
		cmd, err := in.UserInput(context.Background(), b)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if cmd.Action != w {
			t.Errorf("unexpected action: got=%d want=%d", cmd.Action, w)
		}
	}
	if _, err := in.UserInput(context.Background(), b); !errors.Is(err, io.EOF) {
		t.Errorf("unexpected error: got=%v want=%v", err, io.EOF)
	}
}
