package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"canvasbee/internal/gitmap"
	"canvasbee/internal/roster"
	"canvasbee/internal/tui"
)

var (
	studentsFileAssignmentID     int64
	studentsFileGitMap           string
	studentsFileOutput           string
	studentsFileIncludeGroupless bool
)

// createStudentsFileCmd writes the students file for an assignment.
var createStudentsFileCmd = &cobra.Command{
	Use:   "create-students-file",
	Short: "create the students file for a Canvas assignment",
	Long: `Create the students file for a Canvas assignment.

All students with a submission for the assignment are resolved to their Git
id through the Canvas-Git mapping table and written to the students file,
one line per submission. For a group assignment the groups are written
instead, each line the space-joined Git ids of one group's members.

Students not yet assigned to a group in a group assignment are left out by
default; use --include-groupless to keep them as individual lines.`,
	RunE: runCreateStudentsFile,
}

func init() {
	createStudentsFileCmd.Flags().Int64Var(&studentsFileAssignmentID, "assignment-id", 0, "Canvas assignment id")
	createStudentsFileCmd.Flags().StringVar(&studentsFileGitMap, "git-map", "", "mapping table CSV file (default from config)")
	createStudentsFileCmd.Flags().StringVar(&studentsFileOutput, "students-file", "", "output file (default from config)")
	createStudentsFileCmd.Flags().BoolVar(&studentsFileIncludeGroupless, "include-groupless", false,
		"include students who are not assigned to a group for group assignments")
	_ = createStudentsFileCmd.MarkFlagRequired("assignment-id")
	rootCmd.AddCommand(createStudentsFileCmd)
}

func runCreateStudentsFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	gitMapPath := studentsFileGitMap
	if gitMapPath == "" {
		gitMapPath = cfg.Roster.GitMapFile
	}
	outputPath := studentsFileOutput
	if outputPath == "" {
		outputPath = cfg.Roster.StudentsFile
	}

	mapping, err := gitmap.LoadFile(gitMapPath)
	if err != nil {
		return err
	}

	assignment, err := client.Assignment(cmd.Context(), cfg.Canvas.CourseID, studentsFileAssignmentID)
	if err != nil {
		return err
	}

	logger.Debug("building roster",
		zap.String("assignment", assignment.Name),
		zap.Int("submissions", len(assignment.Submissions)),
		zap.Bool("group_assignment", assignment.IsGroupAssignment()))

	report, err := roster.CreateStudentsFile(assignment, mapping, outputPath, studentsFileIncludeGroupless)
	if report != nil && report.Partial() {
		tui.Warn(report.Message())
	}
	if err != nil {
		return err
	}

	tui.Informf("Students file written to %q.", outputPath)
	return nil
}
