package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/controller"
	"github.com/mcoot/tictactoe-go/internal/view"
)

const playHelp = `Commands:
  create          create a room
  join            join a room
  board           reload the board from the server
  move <row> <col>
  restart         restart the game on the server
  reset           clear the local board
  help            show this help
  quit            leave`

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Interactive session",
		Long: `Start an interactive session. Commands are read from stdin one per line:

` + playHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// terminal reads prompts and writes notifications on a line-based console
type terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func (t *terminal) Prompt(_ context.Context, label string) (string, error) {
	_, _ = fmt.Fprintf(t.out, "%s: ", label)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *terminal) Notify(msg string) {
	_, _ = fmt.Fprintf(t.out, "! %s\n", msg)
}

func runPlay(ctx context.Context, in io.Reader, out io.Writer) error {
	term := &terminal{in: bufio.NewScanner(in), out: out}
	board := view.NewText(out)
	ctrl := controller.New(client, term, term, board, logger)

	_, _ = fmt.Fprintln(out, `Type "help" for commands.`)

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !term.in.Scan() {
			_, _ = fmt.Fprintln(out)
			return term.in.Err()
		}

		fields := strings.Fields(term.in.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			_, _ = fmt.Fprintln(out, playHelp)
		case "create":
			err = ctrl.Dispatch(ctx, controller.CreateRoom{})
		case "join":
			err = ctrl.Dispatch(ctx, controller.JoinRoom{})
		case "board":
			err = ctrl.Dispatch(ctx, controller.FetchBoard{})
		case "restart":
			err = ctrl.Dispatch(ctx, controller.RestartGame{})
		case "reset":
			err = ctrl.Dispatch(ctx, controller.ResetBoard{})
		case "move":
			err = playMove(ctx, term, board, fields[1:])
		default:
			term.Notify(fmt.Sprintf("unknown command %q", fields[0]))
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		// Anything else was already shown to the user by the controller
		logger.Debug("command failed", "command", fields[0], "error", err.Error())
	}
}

// playMove clicks the rendered cell, as the page's cell handler would.
// Input mistakes are reported here; only controller errors are returned.
func playMove(ctx context.Context, term *terminal, board *view.Text, args []string) error {
	if len(args) != 2 {
		term.Notify("usage: move <row> <col>")
		return nil
	}
	pos, err := parsePosition(args[0], args[1])
	if err != nil {
		term.Notify(err.Error())
		return nil
	}
	if !board.Visible() {
		term.Notify(controller.MsgNoRoom)
		return nil
	}
	return board.Click(ctx, pos)
}
