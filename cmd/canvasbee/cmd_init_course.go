package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"canvasbee/internal/config"
	"canvasbee/internal/gitmap"
	"canvasbee/internal/tui"
)

// initCourseCmd sets up a course directory: configuration file plus a
// wizard-generated Canvas-Git mapping table.
var initCourseCmd = &cobra.Command{
	Use:   "init-course <course-url>",
	Short: "start managing a Canvas course",
	Long: `Create a directory for a Canvas course and populate it with a
canvasbee configuration file and a Canvas-Git mapping table.

The course URL is the address of the course in your browser, e.g.
https://canvas.example.edu/courses/345. API URL and course id are derived
from it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInitCourse,
}

func init() {
	rootCmd.AddCommand(initCourseCmd)
}

func runInitCourse(cmd *cobra.Command, args []string) error {
	prompter := tui.TerminalPrompter{}

	apiURL, id, err := parseCourseURL(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Canvas.BaseURL = apiURL
	cfg.Canvas.CourseID = id

	if cfg.Canvas.AccessToken == "" {
		token, err := prompter.Password("Enter your Canvas access token:")
		if err != nil {
			return err
		}
		cfg.Canvas.AccessToken = token
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	course, err := client.Course(ctx, id)
	if err != nil {
		return err
	}

	tui.Informf("Initializing Canvas course %q for use with canvasbee.", course.Name)

	courseDir, err := askDir(prompter, "Enter course directory name:", pathName(course.Name))
	if err != nil {
		return err
	}

	students, err := course.Students(ctx)
	if err != nil {
		return err
	}
	mappingTable, err := gitmap.TableWizard(course.Name, students, prompter)
	if err != nil {
		return err
	}

	if incomplete := gitmap.IncompleteRows(mappingTable); len(incomplete) > 0 {
		tui.Warnf("%d students do not have both a Canvas and a Git login ID. "+
			"Please resolve this before creating students files for this course.", len(incomplete))
	}

	if err := os.MkdirAll(courseDir, 0755); err != nil {
		return err
	}
	tui.Informf("Created: %s", courseDir)

	mapPath := filepath.Join(courseDir, gitmap.DefaultFilename)
	if err := mappingTable.WriteFile(mapPath); err != nil {
		return err
	}
	tui.Informf("Created: %s  (the Canvas-Git mapping table CSV file)", mapPath)

	cfg.Roster.GitMapFile = gitmap.DefaultFilename
	cfgPath := filepath.Join(courseDir, config.DefaultFilename)
	if err := cfg.Save(cfgPath); err != nil {
		return err
	}
	tui.Informf("Created: %s  (the canvasbee configuration file)", cfgPath)

	tui.Informf("Initialization of course %q complete!", course.Name)
	return nil
}

// askDir asks for a directory name until the operator names one that does
// not exist yet or gives up.
func askDir(prompter tui.Prompter, question, suggestion string) (string, error) {
	for {
		dir, err := prompter.Input(question, suggestion)
		if err != nil {
			return "", err
		}
		if dir == "" {
			dir = suggestion
		}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return dir, nil
		}

		tui.Warnf("Directory %q already exists.", dir)
		again, err := prompter.Confirm("Do you want to continue and enter another directory?")
		if err != nil {
			return "", err
		}
		if !again {
			return "", fmt.Errorf("command init-course stopped")
		}
	}
}

// parseCourseURL derives the API base URL and the course id from a Canvas
// course web URL like https://canvas.example.edu/courses/345.
func parseCourseURL(courseURL string) (string, int64, error) {
	u, err := url.Parse(courseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", 0, fmt.Errorf("invalid course URL %q", courseURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "courses" || i+1 >= len(parts) {
			continue
		}
		id, err := strconv.ParseInt(parts[i+1], 10, 64)
		if err != nil {
			break
		}
		return fmt.Sprintf("%s://%s/api/v1", u.Scheme, u.Host), id, nil
	}

	return "", 0, fmt.Errorf("cannot find a course id in URL %q", courseURL)
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonWordRE    = regexp.MustCompile(`[^\w]`)
)

// pathName converts a course name into a string usable as a directory name.
func pathName(name string) string {
	path := whitespaceRE.ReplaceAllString(name, "_")
	return nonWordRE.ReplaceAllString(path, "")
}
