package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/roomcode"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "create [room-id]",
		Short: "Create a room",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var roomID string
			if len(args) == 1 {
				roomID = args[0]
			}
			if roomID == "" && generate {
				roomID = roomcode.New().Generate()
			}
			if roomID == "" {
				return fmt.Errorf("%w: pass a room id or --generate", model.ErrEmptyRoomID)
			}

			result, err := client.CreateRoom(cmd.Context(), roomID)
			if err != nil {
				return err
			}
			if result.ID == "" {
				result.ID = roomID
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).Print(*result)
		},
	}

	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a random room id")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.GetRoom(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).Print(*result)
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room and show its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]
			if name == "" {
				return model.ErrEmptyPlayerName
			}

			if _, err := client.GetRoom(cmd.Context(), roomID); err != nil {
				return err
			}

			board, err := client.GetBoard(cmd.Context(), roomID)
			if err != nil {
				return err
			}

			return NewOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout()).Print(RoomBoard{
				RoomID:  roomID,
				Board:   board,
				Message: fmt.Sprintf("Joined room with ID: %s as %s", roomID, name),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
