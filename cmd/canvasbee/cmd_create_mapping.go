package main

import (
	"github.com/spf13/cobra"

	"canvasbee/internal/gitmap"
	"canvasbee/internal/tui"
)

var createMappingGitMap string

// createMappingCmd runs the mapping wizard for the configured course and
// writes the resulting table to the mapping CSV.
var createMappingCmd = &cobra.Command{
	Use:   "create-mapping",
	Short: "create a Canvas-Git mapping table via a wizard",
	Long: `Create a Canvas-Git mapping table for a Canvas course via a wizard
and write the table to file.

The wizard lists the student data available in Canvas, asks which field to
use as the students' Git ID, and which extra columns to keep for
readability. Students without a usable Git ID end up with a blank git_id
cell; curate the CSV by hand before creating students files from it.`,
	RunE: runCreateMapping,
}

func init() {
	createMappingCmd.Flags().StringVar(&createMappingGitMap, "git-map", "", "mapping table CSV file (default from config)")
	rootCmd.AddCommand(createMappingCmd)
}

func runCreateMapping(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	course, err := client.Course(ctx, cfg.Canvas.CourseID)
	if err != nil {
		return err
	}
	students, err := course.Students(ctx)
	if err != nil {
		return err
	}

	mappingTable, err := gitmap.TableWizard(course.Name, students, tui.TerminalPrompter{})
	if err != nil {
		return err
	}
	if mappingTable.Empty() {
		tui.Warn("Canvas-Git mapping table CSV is not created.")
		return nil
	}

	path := createMappingGitMap
	if path == "" {
		path = cfg.Roster.GitMapFile
	}
	if err := mappingTable.WriteFile(path); err != nil {
		return err
	}

	if incomplete := gitmap.IncompleteRows(mappingTable); len(incomplete) > 0 {
		tui.Warnf("%d students do not have both a Canvas and a Git login ID. "+
			"Please resolve this in %q before creating a students file.", len(incomplete), path)
	}

	tui.Informf("Created file: %s  (the Canvas-Git mapping table CSV file)", path)
	return nil
}
