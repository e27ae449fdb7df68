package main

import (
	"github.com/spf13/cobra"

	"canvasbee/internal/canvas"
	"canvasbee/internal/tui"
)

var (
	prepareAssignmentID int64
	prepareMessage      string
)

// prepareAssignmentCmd checks an assignment's configuration and initializes
// its submissions for group work.
var prepareAssignmentCmd = &cobra.Command{
	Use:   "prepare-assignment",
	Short: "check an assignment's configuration and initialize its submissions",
	Long: `Check the configuration of a Canvas assignment and prepare it for
roster management.

The assignment must allow file upload submissions. When the checks pass, a
start message is posted to every submission: in Canvas a submission stays
attached to a single student until its first comment or hand-in, so posting
the message is what materializes group submissions.`,
	RunE: runPrepareAssignment,
}

func init() {
	prepareAssignmentCmd.Flags().Int64Var(&prepareAssignmentID, "assignment-id", 0, "Canvas assignment id")
	prepareAssignmentCmd.Flags().StringVar(&prepareMessage, "message", "", "start message to post (default from config)")
	_ = prepareAssignmentCmd.MarkFlagRequired("assignment-id")
	rootCmd.AddCommand(prepareAssignmentCmd)
}

// check reports one requirement as a checklist line and returns whether it
// holds.
func check(requirement bool, success, failure string) bool {
	if requirement {
		tui.Inform("☒ " + success)
		return true
	}
	tui.Inform("☐ " + failure)
	return false
}

func runPrepareAssignment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	assignment, err := client.Assignment(ctx, cfg.Canvas.CourseID, prepareAssignmentID)
	if err != nil {
		return err
	}

	ok := check(
		assignment.HasSubmissionType(canvas.SubmissionTypeOnlineUpload),
		"File upload submission enabled",
		"File upload submission disabled",
	)
	if !ok {
		tui.Warn("Assignment configuration is NOT okay. " +
			"Please fix the above issues and run this command again.")
		return nil
	}

	message := prepareMessage
	if message == "" {
		message = cfg.Roster.StartMessage
	}

	if _, err := client.SendMessage(ctx, assignment, message, false); err != nil {
		return err
	}

	tui.Inform("Assignment configuration is OKAY. All Canvas submissions have been initialized.")
	return nil
}
