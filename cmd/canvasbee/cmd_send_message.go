package main

import (
	"github.com/spf13/cobra"

	"canvasbee/internal/tui"
)

var (
	sendMessageAssignmentID int64
	sendMessageResend       bool
)

// sendMessageCmd posts a comment on every submission of an assignment.
var sendMessageCmd = &cobra.Command{
	Use:   "send-message <message>",
	Short: "send a message to each submission of an assignment",
	Long: `Send a message to each submission of a Canvas assignment.

If the message already appears in a submission's comments, that submission
is skipped; use --resend to post it regardless.`,
	Args: cobra.ExactArgs(1),
	RunE: runSendMessage,
}

func init() {
	sendMessageCmd.Flags().Int64Var(&sendMessageAssignmentID, "assignment-id", 0, "Canvas assignment id")
	sendMessageCmd.Flags().BoolVar(&sendMessageResend, "resend", false,
		"send the message even if it already appears in a submission's comments")
	_ = sendMessageCmd.MarkFlagRequired("assignment-id")
	rootCmd.AddCommand(sendMessageCmd)
}

func runSendMessage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	assignment, err := client.Assignment(ctx, cfg.Canvas.CourseID, sendMessageAssignmentID)
	if err != nil {
		return err
	}

	sent, err := client.SendMessage(ctx, assignment, args[0], sendMessageResend)
	if err != nil {
		return err
	}

	tui.Informf("Message posted to %d of %d submissions.", sent, len(assignment.Submissions))
	return nil
}
