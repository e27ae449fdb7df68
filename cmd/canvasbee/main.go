// canvasbee manages the roster side of Git-based Canvas assignments: it
// maintains a Canvas-Git identity mapping for a course and materializes
// students files from assignment submissions.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"canvasbee/internal/canvas"
	"canvasbee/internal/config"
	"canvasbee/internal/tui"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	baseURL     string
	accessToken string
	courseID    int64

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "canvasbee",
	Short: "canvasbee - manage Canvas course rosters for Git-based assignments",
	Long: `canvasbee reconciles a Canvas course roster with Git identities.

Student login ids usually differ between Canvas and the Git platform, so
canvasbee keeps a per-course mapping table (canvas-git-map.csv) and uses it
to turn an assignment's submissions into a students file: one line per
individual submission, one space-joined line per group submission.

Typical workflow:
  1. canvasbee init-course <course-url>      set up a course directory
  2. curate canvas-git-map.csv by hand       fill in missing Git ids
  3. canvasbee prepare-assignment ...        initialize group submissions
  4. canvasbee create-students-file ...      write students.lst`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFilename, "configuration file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Canvas API base URL, e.g. https://canvas.example.edu/api/v1")
	rootCmd.PersistentFlags().StringVar(&accessToken, "access-token", "", "Canvas API access token")
	rootCmd.PersistentFlags().Int64Var(&courseID, "course-id", 0, "Canvas course id")
}

// loadConfig resolves the effective configuration: config file, then
// environment, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Canvas.BaseURL = baseURL
	}
	if flags.Changed("access-token") {
		cfg.Canvas.AccessToken = accessToken
	}
	if flags.Changed("course-id") {
		cfg.Canvas.CourseID = courseID
	}

	return cfg, nil
}

// newClient validates the configuration and builds the API client.
func newClient(cfg *config.Config) (*canvas.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientCfg := canvas.DefaultConfig(cfg.Canvas.BaseURL, cfg.Canvas.AccessToken)
	clientCfg.Timeout = cfg.APITimeout()

	logger.Debug("creating canvas client",
		zap.String("base_url", cfg.Canvas.BaseURL),
		zap.Int64("course_id", cfg.Canvas.CourseID))

	return canvas.NewClient(clientCfg), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		tui.Fault("canvasbee stopped because of an error.", err)
		os.Exit(1)
	}
}
