package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/model"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <room-id>",
		Short: "Show a room's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]

			board, err := client.GetBoard(cmd.Context(), roomID)
			if err != nil {
				return err
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).Print(RoomBoard{RoomID: roomID, Board: board})
		},
	}
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <room-id> <row> <col>",
		Short: "Place a marker (rows and columns are 0-2)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]

			pos, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}

			result, err := client.Move(cmd.Context(), roomID, pos)
			if err != nil {
				return err
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).Print(RoomBoard{
				RoomID:  roomID,
				Board:   *result.Board,
				Message: result.Message,
			})
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <room-id>",
		Short: "Restart the game in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Restart(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).PrintMessage(result.Message)
		},
	}
}

func parsePosition(rowArg, colArg string) (model.Position, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid row: %w", err)
	}

	col, err := strconv.Atoi(colArg)
	if err != nil {
		return model.Position{}, fmt.Errorf("invalid col: %w", err)
	}

	pos := model.Position{Row: row, Col: col}
	if !pos.IsValid() {
		return model.Position{}, fmt.Errorf("%w: %d,%d", model.ErrInvalidPosition, row, col)
	}
	return pos, nil
}
